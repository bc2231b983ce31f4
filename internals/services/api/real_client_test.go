package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentModel "schoolpay_dashboard/internals/features/payments/model"
)

func newBackend(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestRealGetAll_QueryAndEnvelope(t *testing.T) {
	var gotQuery, gotAuth string
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"_id":"a","custom_order_id":"ORD-1","order_amount":1500,"status":"success"}],"total":31,"page":2,"limit":10,"pages":4}`)
	})

	c := NewRealClient(srv.URL+"/", &memCreds{token: "tok"})
	page, err := c.GetAll(context.Background(), Params{
		"page":   2,
		"limit":  10,
		"search": "  ",
		"status": []string{"success", "", "failed"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "limit=10&page=2&status=success&status=failed", gotQuery)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ORD-1", page.Items[0].CustomOrderID)
	assert.True(t, decimal.NewFromInt(1500).Equal(page.Items[0].OrderAmount))
	assert.EqualValues(t, 31, page.Pagination.Total)
	assert.Equal(t, 4, page.Pagination.Pages)
	assert.Equal(t, 2, page.Pagination.Page)
}

func TestRealGetBySchool_EscapesID(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions/school/SCH%2F1", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `[]`)
	})

	c := NewRealClient(srv.URL, &memCreds{})
	page, err := c.GetBySchool(context.Background(), "SCH/1", Params{"page": 3, "limit": 20})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Pagination.Page)
	assert.Equal(t, 20, page.Pagination.Limit)
	assert.Equal(t, 1, page.Pagination.Pages)
}

func TestRealUnauthorizedClearsCredential(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"jwt expired"}`)
	})

	creds := &memCreds{token: "old"}
	c := NewRealClient(srv.URL, creds)
	_, err := c.GetAll(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "jwt expired", Message(err, "x"))
	assert.Equal(t, 1, creds.cleared)
	assert.Empty(t, creds.token)
}

func TestRealGetStatus(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transactions/transaction-status/ORD-1":
			_, _ = io.WriteString(w, `{"data":{"_id":"x","custom_order_id":"ORD-1","status":"pending","payment_time":null}}`)
		case "/transactions/transaction-status/ORD-NULL":
			_, _ = io.WriteString(w, `{"data":null}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Transaction not found"}`)
		}
	})
	c := NewRealClient(srv.URL, &memCreds{})

	tx, err := c.GetStatus(context.Background(), "ORD-1")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, "pending", string(tx.Status))
	assert.Nil(t, tx.PaymentTime)

	tx, err = c.GetStatus(context.Background(), "ORD-NULL")
	require.NoError(t, err)
	assert.Nil(t, tx)

	tx, err = c.GetStatus(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestRealErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusConflict, KindValidation},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		c := NewRealClient(srv.URL, &memCreds{})
		_, err := c.GetAll(context.Background(), nil)
		srv.Close()

		assert.Equal(t, tc.kind, KindOf(err), "status %d", tc.status)
		assert.Equal(t, "Failed to fetch transactions", Message(err, "Failed to fetch transactions"))
	}
}

func TestRealNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewRealClient(url, &memCreds{})
	_, err := c.GetAll(context.Background(), nil)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestRealCreatePayment(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/create-payment", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"order_id":"ORD-9"`)
		_, _ = io.WriteString(w, `{"data":{"redirectUrl":"https://pay.example/abc","custom_order_id":"ORD-9"}}`)
	})

	c := NewRealClient(srv.URL, &memCreds{})
	res, err := c.CreatePayment(context.Background(), paymentModel.PaymentRequest{OrderID: "ORD-9", OrderAmount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", res.RedirectURL)
	assert.Equal(t, "ORD-9", res.CustomOrderID)
}

func TestRealLoginAndProfile(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			_, _ = io.WriteString(w, `{"data":{"token":"abc"},"message":"ok"}`)
		case "/auth/profile":
			assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
			_, _ = io.WriteString(w, `{"data":{"user":{"_id":"u1","username":"ops","email":"ops@example.com"}}}`)
		}
	})

	creds := &memCreds{}
	c := NewRealClient(srv.URL, creds)
	res, err := c.Login(context.Background(), "ops@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Token)

	creds.token = res.Token
	u, err := c.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "ops", u.Name)
}

func TestNewPicksMode(t *testing.T) {
	assert.True(t, IsDemo(New(Config{BaseURL: "  ", DemoSecret: "s"}, &memCreds{})))
	assert.False(t, IsDemo(New(Config{BaseURL: "http://localhost:3000"}, &memCreds{})))
}
