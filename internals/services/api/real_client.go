package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"

	authModel "schoolpay_dashboard/internals/features/auth/model"
	paymentModel "schoolpay_dashboard/internals/features/payments/model"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

// RealClient talks to the backend REST service.
type RealClient struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
}

type Option func(*RealClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(rc *RealClient) {
		rc.httpClient = c
	}
}

// NewRealClient builds a client for baseURL. No client-side timeout is set;
// callers bound calls through ctx.
func NewRealClient(baseURL string, creds CredentialSource, opts ...Option) *RealClient {
	c := &RealClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RealClient) GetAll(ctx context.Context, params Params) (txModel.TransactionPage, error) {
	q := CleanParams(params)
	body, err := c.do(ctx, "transactions.list", http.MethodGet, "/transactions", q, nil)
	if err != nil {
		return txModel.TransactionPage{}, err
	}
	return c.list("transactions.list", body, q)
}

func (c *RealClient) GetBySchool(ctx context.Context, schoolID string, params Params) (txModel.TransactionPage, error) {
	q := CleanParams(params)
	path := "/transactions/school/" + url.PathEscape(schoolID)
	body, err := c.do(ctx, "transactions.school", http.MethodGet, path, q, nil)
	if err != nil {
		return txModel.TransactionPage{}, err
	}
	return c.list("transactions.school", body, q)
}

func (c *RealClient) list(op string, body []byte, q url.Values) (txModel.TransactionPage, error) {
	page, err := decodeList(body, intParam(q, "page", 1), intParam(q, "limit", 10))
	if err != nil {
		return txModel.TransactionPage{}, &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return page, nil
}

func (c *RealClient) GetStatus(ctx context.Context, orderID string) (*txModel.Transaction, error) {
	const op = "transactions.status"
	path := "/transactions/transaction-status/" + url.PathEscape(orderID)
	body, err := c.do(ctx, op, http.MethodGet, path, nil, nil)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	tx, err := decodeTransaction(body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return tx, nil
}

func (c *RealClient) CreatePayment(ctx context.Context, req paymentModel.PaymentRequest) (paymentModel.PaymentResult, error) {
	const op = "payment.create"
	body, err := c.do(ctx, op, http.MethodPost, "/payment/create-payment", nil, req)
	if err != nil {
		return paymentModel.PaymentResult{}, err
	}
	redirect, orderID, err := decodePayment(body)
	if err != nil {
		return paymentModel.PaymentResult{}, &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return paymentModel.PaymentResult{RedirectURL: redirect, CustomOrderID: orderID}, nil
}

func (c *RealClient) Login(ctx context.Context, email, password string) (authModel.LoginResponse, error) {
	const op = "auth.login"
	payload := authModel.LoginRequest{Email: email, Password: password}
	body, err := c.do(ctx, op, http.MethodPost, "/auth/login", nil, payload)
	if err != nil {
		return authModel.LoginResponse{}, err
	}
	token, msg, err := decodeToken(body)
	if err != nil {
		return authModel.LoginResponse{}, &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return authModel.LoginResponse{Token: token, Message: msg}, nil
}

func (c *RealClient) Register(ctx context.Context, req authModel.RegisterRequest) (authModel.RegisterResponse, error) {
	const op = "auth.register"
	body, err := c.do(ctx, op, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return authModel.RegisterResponse{}, err
	}
	out := authModel.RegisterResponse{Message: extractMessage(body)}
	if u, err := decodeUser(body); err == nil {
		out.User = u
	}
	return out, nil
}

func (c *RealClient) GetProfile(ctx context.Context) (*authModel.User, error) {
	const op = "auth.profile"
	body, err := c.do(ctx, op, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeUser(body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return u, nil
}

func (c *RealClient) UpdateProfile(ctx context.Context, req authModel.ProfileUpdate) (*authModel.User, error) {
	const op = "auth.profile.update"
	body, err := c.do(ctx, op, http.MethodPut, "/auth/profile", nil, req)
	if err != nil {
		return nil, err
	}
	u, err := decodeUser(body)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return u, nil
}

// do sends one request with the bearer credential attached. A 401 clears the
// persisted credential before the error is returned.
func (c *RealClient) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	var rdr io.Reader
	if payload != nil {
		b, err := sonic.Marshal(payload)
		if err != nil {
			return nil, &Error{Op: op, Kind: KindDecode, Err: fmt.Errorf("encode body: %w", err)}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Err: fmt.Errorf("build request: %w", err)}
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	sent := c.creds.Token()
	if sent != "" {
		req.Header.Set("Authorization", "Bearer "+sent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		record(op, "network_error")
		return nil, &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		record(op, "network_error")
		return nil, &Error{Op: op, Kind: KindNetwork, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		kind := kindForStatus(resp.StatusCode)
		record(op, kind.String())
		if kind == KindUnauthorized && sent != "" {
			c.creds.Revoke(sent)
			log.Printf("[API] %s: unauthorized, credential removed", op)
		}
		return nil, &Error{Op: op, Kind: kind, Status: resp.StatusCode, Message: extractMessage(body)}
	}
	record(op, "ok")
	return body, nil
}
