package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"

	authModel "schoolpay_dashboard/internals/features/auth/model"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

type listEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Total *int64          `json:"total"`
	Page  *int            `json:"page"`
	Limit *int            `json:"limit"`
	Pages *int            `json:"pages"`
}

func (e listEnvelope) merge(outer listEnvelope) listEnvelope {
	if e.Total == nil {
		e.Total = outer.Total
	}
	if e.Page == nil {
		e.Page = outer.Page
	}
	if e.Limit == nil {
		e.Limit = outer.Limit
	}
	if e.Pages == nil {
		e.Pages = outer.Pages
	}
	return e
}

func isJSON(raw []byte, lead byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == lead
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// decodeList accepts a bare array, {data:[...], total, ...} or
// {data:{data:[...], total, ...}} and returns the canonical page. Missing
// pages fall back to 1, missing total to len(items), missing page/limit to
// the requested values.
func decodeList(body []byte, page, limit int) (txModel.TransactionPage, error) {
	var items []txModel.Transaction
	var env listEnvelope

	switch {
	case isNull(body):
	case isJSON(body, '['):
		if err := sonic.Unmarshal(body, &items); err != nil {
			return txModel.TransactionPage{}, fmt.Errorf("decode list: %w", err)
		}
	case isJSON(body, '{'):
		if err := sonic.Unmarshal(body, &env); err != nil {
			return txModel.TransactionPage{}, fmt.Errorf("decode envelope: %w", err)
		}
		if isJSON(env.Data, '{') {
			var inner listEnvelope
			if err := sonic.Unmarshal(env.Data, &inner); err != nil {
				return txModel.TransactionPage{}, fmt.Errorf("decode nested envelope: %w", err)
			}
			env = inner.merge(env)
		}
		if isJSON(env.Data, '[') {
			if err := sonic.Unmarshal(env.Data, &items); err != nil {
				return txModel.TransactionPage{}, fmt.Errorf("decode items: %w", err)
			}
		}
	default:
		return txModel.TransactionPage{}, fmt.Errorf("decode list: unexpected body")
	}

	if items == nil {
		items = []txModel.Transaction{}
	}
	p := txModel.Pagination{Page: page, Limit: limit, Total: int64(len(items)), Pages: 1}
	if env.Page != nil {
		p.Page = *env.Page
	}
	if env.Limit != nil {
		p.Limit = *env.Limit
	}
	if env.Total != nil {
		p.Total = *env.Total
	}
	if env.Pages != nil {
		p.Pages = *env.Pages
	}
	return txModel.TransactionPage{Items: items, Pagination: p}, nil
}

// decodeTransaction accepts {data: tx|null} or a bare transaction object.
func decodeTransaction(body []byte) (*txModel.Transaction, error) {
	if isNull(body) {
		return nil, nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	raw := env.Data
	if env.Data == nil {
		raw = body
	} else if isNull(env.Data) {
		return nil, nil
	}
	var tx txModel.Transaction
	if err := sonic.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}
	if tx.CustomOrderID == "" && tx.ID == "" {
		return nil, nil
	}
	return &tx, nil
}

// decodeUser finds the user in data.user, user, data or the body itself.
func decodeUser(body []byte) (*authModel.User, error) {
	var env struct {
		Data json.RawMessage `json:"data"`
		User json.RawMessage `json:"user"`
	}
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	candidates := make([][]byte, 0, 4)
	if isJSON(env.Data, '{') {
		var inner struct {
			User json.RawMessage `json:"user"`
		}
		if err := sonic.Unmarshal(env.Data, &inner); err == nil && isJSON(inner.User, '{') {
			candidates = append(candidates, inner.User)
		}
	}
	if isJSON(env.User, '{') {
		candidates = append(candidates, env.User)
	}
	if isJSON(env.Data, '{') {
		candidates = append(candidates, env.Data)
	}
	candidates = append(candidates, body)

	for _, raw := range candidates {
		var u rawUser
		if err := sonic.Unmarshal(raw, &u); err != nil {
			continue
		}
		if user := u.toUser(); user.ID != "" || user.Email != "" {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("decode profile: no user in response")
}

// rawUser tolerates Mongo-style "_id" alongside "id".
type rawUser struct {
	ID       string `json:"id"`
	MongoID  string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u rawUser) toUser() authModel.User {
	out := authModel.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
	if out.ID == "" {
		out.ID = u.MongoID
	}
	if out.Name == "" {
		out.Name = u.Username
	}
	return out
}

// decodeToken reads the credential from token or data.token.
func decodeToken(body []byte) (token, message string, err error) {
	var env struct {
		Token   string          `json:"token"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := sonic.Unmarshal(body, &env); err != nil {
		return "", "", fmt.Errorf("decode login: %w", err)
	}
	token = env.Token
	if token == "" && isJSON(env.Data, '{') {
		var inner struct {
			Token       string `json:"token"`
			AccessToken string `json:"access_token"`
		}
		if err := sonic.Unmarshal(env.Data, &inner); err == nil {
			token = inner.Token
			if token == "" {
				token = inner.AccessToken
			}
		}
	}
	return token, env.Message, nil
}

// decodePayment reads redirectUrl / custom_order_id at top level or under data.
func decodePayment(body []byte) (redirectURL, orderID string, err error) {
	type fields struct {
		RedirectURL       string          `json:"redirectUrl"`
		CollectRequestURL string          `json:"collect_request_url"`
		CustomOrderID     string          `json:"custom_order_id"`
		Data              json.RawMessage `json:"data"`
	}
	var top fields
	if err := sonic.Unmarshal(body, &top); err != nil {
		return "", "", fmt.Errorf("decode payment: %w", err)
	}
	var inner fields
	if isJSON(top.Data, '{') {
		_ = sonic.Unmarshal(top.Data, &inner)
	}
	redirectURL = firstNonEmpty(inner.RedirectURL, top.RedirectURL, inner.CollectRequestURL, top.CollectRequestURL)
	orderID = firstNonEmpty(inner.CustomOrderID, top.CustomOrderID)
	return redirectURL, orderID, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
