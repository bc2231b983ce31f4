package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Params is a loose query parameter set as views build it. Values may be
// strings, numbers, bools, slices of those, or nil.
type Params map[string]any

// Merge returns a new Params with the entries of others laid over p.
func (p Params) Merge(others ...map[string]any) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// CleanParams drops nil values, blank strings, blank slice elements and
// slices left empty. Slices become repeated keys.
func CleanParams(p Params) url.Values {
	out := url.Values{}
	for key, raw := range p {
		if raw == nil {
			continue
		}
		rv := reflect.ValueOf(raw)
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				continue
			}
			rv = rv.Elem()
		}
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			if rv.Kind() == reflect.Slice && rv.IsNil() {
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				if s, ok := scalar(rv.Index(i)); ok {
					out.Add(key, s)
				}
			}
			continue
		}
		if s, ok := scalar(rv); ok {
			out.Set(key, s)
		}
	}
	return out
}

func scalar(v reflect.Value) (string, bool) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	var s string
	switch v.Kind() {
	case reflect.String:
		s = v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s = strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s = strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		s = strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		s = strconv.FormatBool(v.Bool())
	default:
		if v.CanInterface() {
			if st, ok := v.Interface().(fmt.Stringer); ok {
				s = st.String()
				break
			}
		}
		s = fmt.Sprint(v.Interface())
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// intParam reads a positive int from cleaned params, or def.
func intParam(v url.Values, key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Get(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
