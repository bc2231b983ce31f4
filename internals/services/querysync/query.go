// Package querysync keeps a list view's filter and pagination state in step
// with the backend. A Query issues at most one fetch per distinct parameter
// set and drops responses that were overtaken by a newer fetch.
package querysync

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"schoolpay_dashboard/internals/constants"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
	"schoolpay_dashboard/internals/metrics"
	"schoolpay_dashboard/internals/services/api"
)

// State is what a view renders.
type State struct {
	Items      []txModel.Transaction `json:"items"`
	Loading    bool                  `json:"loading"`
	Error      string                `json:"error,omitempty"`
	Pagination txModel.Pagination    `json:"pagination"`
	Filters    txModel.Filters       `json:"filters"`
	SchoolID   string                `json:"schoolId,omitempty"`
}

// URLState is the view state carried in a request URL.
type URLState struct {
	Page     int
	Limit    int
	Filters  txModel.Filters
	SchoolID string
}

type fetchFunc func(ctx context.Context, schoolID string, params api.Params) (txModel.TransactionPage, error)

// Query holds one view's state. Each operation returns the state for the
// request it served: its own fetch result, the result of an identical fetch
// already in flight, or the settled state when nothing had to be fetched.
type Query struct {
	name   string
	fetch  fetchFunc
	scoped bool

	flight singleflight.Group

	mu         sync.Mutex
	filters    txModel.Filters
	pagination txModel.Pagination
	schoolID   string
	items      []txModel.Transaction
	loading    bool
	errMsg     string
	lastSig    string
	seq        uint64
}

// NewTransactions builds the unscoped list query.
func NewTransactions(client api.TransactionAPI, initial txModel.Filters) *Query {
	return newQuery("transactions", false, initial, func(ctx context.Context, _ string, p api.Params) (txModel.TransactionPage, error) {
		return client.GetAll(ctx, p)
	})
}

// NewSchoolTransactions builds the school-scoped query. It stays idle until
// a school id is set.
func NewSchoolTransactions(client api.TransactionAPI, schoolID string, initial txModel.Filters) *Query {
	q := newQuery("school-transactions", true, initial, client.GetBySchool)
	q.schoolID = strings.TrimSpace(schoolID)
	return q
}

func newQuery(name string, scoped bool, initial txModel.Filters, fetch fetchFunc) *Query {
	return &Query{
		name:       name,
		fetch:      fetch,
		scoped:     scoped,
		filters:    initial,
		items:      []txModel.Transaction{},
		pagination: txModel.Pagination{Page: constants.DefaultPage, Limit: constants.DefaultLimit, Pages: 1},
	}
}

func (q *Query) Mount(ctx context.Context) State { return q.load(ctx, false) }

// Refetch reissues the current request even if its parameters are unchanged.
func (q *Query) Refetch(ctx context.Context) State { return q.load(ctx, true) }

// UpdateFilters replaces the filters wholesale and returns to page 1.
func (q *Query) UpdateFilters(ctx context.Context, f txModel.Filters) State {
	q.mu.Lock()
	q.filters = f
	q.pagination.Page = 1
	q.mu.Unlock()
	return q.load(ctx, false)
}

func (q *Query) ChangePage(ctx context.Context, page int) State {
	if page < 1 {
		page = 1
	}
	q.mu.Lock()
	q.pagination.Page = page
	q.mu.Unlock()
	return q.load(ctx, false)
}

// ChangeLimit sets the page size and returns to page 1.
func (q *Query) ChangeLimit(ctx context.Context, limit int) State {
	if limit < 1 {
		limit = constants.DefaultLimit
	}
	q.mu.Lock()
	q.pagination.Limit = limit
	q.pagination.Page = 1
	q.mu.Unlock()
	return q.load(ctx, false)
}

// SetSchool changes the scope of a school query. Ignored by unscoped queries.
func (q *Query) SetSchool(ctx context.Context, schoolID string) State {
	if !q.scoped {
		return q.Snapshot()
	}
	q.mu.Lock()
	q.schoolID = strings.TrimSpace(schoolID)
	q.mu.Unlock()
	return q.load(ctx, false)
}

// Sync adopts the URL state as a whole and fetches if it differs from the
// last request.
func (q *Query) Sync(ctx context.Context, u URLState) State {
	q.mu.Lock()
	q.filters = u.Filters
	if u.Page > 0 {
		q.pagination.Page = u.Page
	}
	if u.Limit > 0 {
		q.pagination.Limit = u.Limit
	}
	if q.scoped {
		q.schoolID = strings.TrimSpace(u.SchoolID)
	}
	q.mu.Unlock()
	return q.load(ctx, false)
}

func (q *Query) Snapshot() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

func (q *Query) snapshotLocked() State {
	items := make([]txModel.Transaction, len(q.items))
	copy(items, q.items)
	return State{
		Items:      items,
		Loading:    q.loading,
		Error:      q.errMsg,
		Pagination: q.pagination,
		Filters:    q.filters,
		SchoolID:   q.schoolID,
	}
}

type result struct {
	page txModel.TransactionPage
	err  error
}

func (q *Query) load(ctx context.Context, force bool) State {
	q.mu.Lock()
	if q.scoped && q.schoolID == "" {
		defer q.mu.Unlock()
		return q.snapshotLocked()
	}
	params := api.Params{"page": q.pagination.Page, "limit": q.pagination.Limit}.Merge(q.filters.Params())
	scope := ""
	if q.scoped {
		scope = q.schoolID
	}
	sig := Signature(params, scope)
	req := State{Pagination: q.pagination, Filters: q.filters, SchoolID: q.schoolID}
	schoolID := q.schoolID

	if !force && sig == q.lastSig {
		if !q.loading {
			defer q.mu.Unlock()
			metrics.QuerySkipped.WithLabelValues("duplicate").Inc()
			return q.snapshotLocked()
		}
		// identical fetch in flight: wait for it instead of issuing another
		q.mu.Unlock()
		metrics.QuerySkipped.WithLabelValues("joined").Inc()
		return req.settle(q.run(ctx, sig, schoolID, params, false))
	}
	q.lastSig = sig
	q.seq++
	seq := q.seq
	q.loading = true
	q.errMsg = ""
	q.mu.Unlock()

	res := q.run(ctx, sig, schoolID, params, force)
	st := req.settle(res)

	q.mu.Lock()
	defer q.mu.Unlock()
	if seq != q.seq {
		metrics.QuerySkipped.WithLabelValues("stale").Inc()
		return st
	}
	q.loading = false
	q.items = st.Items
	q.errMsg = st.Error
	if res.err != nil {
		log.Printf("[QUERY] %s: %v", q.name, res.err)
		// the same parameters may be retried
		q.lastSig = ""
		return st
	}
	q.pagination = st.Pagination
	return st
}

// run shares one backend call between callers with the same signature. The
// call outlives a canceled caller so the callers sharing it still get data.
func (q *Query) run(ctx context.Context, sig, schoolID string, params api.Params, force bool) result {
	if force {
		q.flight.Forget(sig)
	}
	v, _, _ := q.flight.Do(sig, func() (any, error) {
		page, err := q.fetch(context.WithoutCancel(ctx), schoolID, params)
		return result{page: page, err: err}, nil
	})
	return v.(result)
}

// settle fills a request's state from its fetch result.
func (st State) settle(res result) State {
	st.Loading = false
	if res.err != nil {
		st.Items = []txModel.Transaction{}
		st.Error = api.Message(res.err, constants.ErrFetchTransactions)
		return st
	}
	st.Items = make([]txModel.Transaction, len(res.page.Items))
	copy(st.Items, res.page.Items)
	st.Pagination = res.page.Pagination
	return st
}

// Signature is the canonical form of a request: cleaned params with sorted
// keys and sorted values per key, plus the school scope if any.
func Signature(params api.Params, schoolID string) string {
	v := api.CleanParams(params)
	for k := range v {
		sort.Strings(v[k])
	}
	if schoolID != "" {
		v.Set("__school", schoolID)
	}
	return v.Encode()
}
