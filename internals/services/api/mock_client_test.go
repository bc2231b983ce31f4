package api

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authModel "schoolpay_dashboard/internals/features/auth/model"
	paymentModel "schoolpay_dashboard/internals/features/payments/model"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

type memCreds struct {
	token   string
	cleared int
}

func (m *memCreds) Token() string { return m.token }
func (m *memCreds) Clear()        { m.token = ""; m.cleared++ }

func (m *memCreds) Revoke(token string) {
	if token != "" && m.token == token {
		m.Clear()
	}
}

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestMock(creds *memCreds, opts ...MockOption) *MockClient {
	base := []MockOption{WithClock(func() time.Time { return fixedNow }), WithHashCost(bcrypt.MinCost)}
	return NewMockClient(creds, append(base, opts...)...)
}

func TestGenerateTransactions(t *testing.T) {
	items := GenerateTransactions(6, fixedNow)
	require.Len(t, items, 6)

	assert.Equal(t, "txn_1", items[0].ID)
	assert.Equal(t, "COLLECT_1000", items[0].CollectID)
	assert.Equal(t, "SCHOOL_100", items[0].SchoolID)
	assert.Equal(t, "ORD-202400", items[0].CustomOrderID)
	assert.Equal(t, txModel.StatusSuccess, items[0].Status)
	assert.Equal(t, "Razorpay", items[0].Gateway)
	assert.True(t, decimal.NewFromInt(1000).Equal(items[0].OrderAmount))
	require.NotNil(t, items[0].PaymentTime)
	assert.True(t, fixedNow.Equal(*items[0].PaymentTime))

	assert.Equal(t, txModel.StatusPending, items[1].Status)
	assert.Equal(t, "Stripe", items[1].Gateway)
	assert.Nil(t, items[1].PaymentTime)
	assert.False(t, items[1].HasError())

	assert.Equal(t, txModel.StatusFailed, items[2].Status)
	assert.Equal(t, "Cashfree", items[2].Gateway)
	assert.False(t, items[2].HasError())
	assert.Nil(t, items[2].ErrorMessage)
	assert.True(t, fixedNow.AddDate(0, 0, -2).Equal(*items[2].PaymentTime))

	assert.True(t, decimal.NewFromInt(1000).Equal(items[5].OrderAmount))
	assert.True(t, decimal.NewFromInt(1750).Equal(items[3].TransactionAmount))
}

func TestPaginate(t *testing.T) {
	items := GenerateTransactions(25, fixedNow)

	p := Paginate(items, 3, 10)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, txModel.Pagination{Page: 3, Limit: 10, Total: 25, Pages: 3}, p.Pagination)

	p = Paginate(items, 4, 10)
	assert.Equal(t, 3, p.Pagination.Page)
	assert.Len(t, p.Items, 5)

	p = Paginate(items, 0, 10)
	assert.Equal(t, 1, p.Pagination.Page)
	assert.Equal(t, "txn_1", p.Items[0].ID)

	empty := Paginate(nil, 2, 10)
	assert.Empty(t, empty.Items)
	assert.Equal(t, txModel.Pagination{Page: 1, Limit: 10, Total: 0, Pages: 1}, empty.Pagination)
}

func TestMockGetAll_StatusAndSearch(t *testing.T) {
	m := newTestMock(&memCreds{})

	page, err := m.GetAll(context.Background(), Params{"status": "success", "search": "ord-20240"})
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	for i, want := range []string{"ORD-202400", "ORD-202403", "ORD-202406", "ORD-202409"} {
		assert.Equal(t, want, page.Items[i].CustomOrderID)
	}
	assert.EqualValues(t, 4, page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.Pages)
}

func TestMockGetAll_StatusSet(t *testing.T) {
	m := newTestMock(&memCreds{})

	page, err := m.GetAll(context.Background(), Params{"status": []string{"success", "failed", ""}, "limit": 100})
	require.NoError(t, err)
	// 25 records, i%3==1 are pending
	assert.EqualValues(t, 17, page.Pagination.Total)
	for _, it := range page.Items {
		assert.NotEqual(t, txModel.StatusPending, it.Status)
	}
}

func TestMockGetAll_SearchSchoolID(t *testing.T) {
	m := newTestMock(&memCreds{})

	page, err := m.GetAll(context.Background(), Params{"search": "school_112"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ORD-202412", page.Items[0].CustomOrderID)
}

func TestMockGetAll_DateRange(t *testing.T) {
	m := newTestMock(&memCreds{})

	// 2024-06-13 .. 2024-06-15 covers i = 0, 1, 2; i = 1 has no payment time
	page, err := m.GetAll(context.Background(), Params{"dateFrom": "2024-06-13", "dateTo": "2024-06-15"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ORD-202400", page.Items[0].CustomOrderID)
	assert.Equal(t, "ORD-202402", page.Items[1].CustomOrderID)
}

func TestMockGetAll_Sort(t *testing.T) {
	m := newTestMock(&memCreds{})

	page, err := m.GetAll(context.Background(), Params{"sort": "payment_time", "order": "asc", "limit": 25})
	require.NoError(t, err)
	require.Len(t, page.Items, 25)
	assert.Equal(t, "ORD-202424", page.Items[0].CustomOrderID)
	assert.Nil(t, page.Items[24].PaymentTime)

	page, err = m.GetAll(context.Background(), Params{"sort": "order_amount", "order": "desc", "limit": 1})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(page.Items[0].OrderAmount))
}

func TestMockGetAll_Pagination(t *testing.T) {
	m := newTestMock(&memCreds{})

	page, err := m.GetAll(context.Background(), Params{"page": 4, "limit": 10})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Page)
	assert.Len(t, page.Items, 5)
}

func TestMockGetBySchool(t *testing.T) {
	m := newTestMock(&memCreds{})

	page, err := m.GetBySchool(context.Background(), "SCH-1", Params{"limit": 50})
	require.NoError(t, err)
	assert.EqualValues(t, 20, page.Pagination.Total)
	for _, it := range page.Items {
		assert.Equal(t, "SCH-1", it.SchoolID)
	}

	// school id is not a search field in the scoped view
	page, err = m.GetBySchool(context.Background(), "SCH-1", Params{"search": "sch-1"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestMockGetStatus(t *testing.T) {
	m := newTestMock(&memCreds{})

	tx, err := m.GetStatus(context.Background(), "ORD-202405")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, "txn_6", tx.ID)

	tx, err = m.GetStatus(context.Background(), "ORD-202429")
	require.NoError(t, err)
	assert.NotNil(t, tx)

	tx, err = m.GetStatus(context.Background(), "NO-SUCH-ID")
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestMockCreatePayment(t *testing.T) {
	m := newTestMock(&memCreds{})

	res, err := m.CreatePayment(context.Background(), paymentModel.PaymentRequest{
		SchoolID:    "SCH-1",
		OrderID:     "ORD1700000000000abcd",
		OrderAmount: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD1700000000000abcd", res.CustomOrderID)
	assert.Empty(t, res.RedirectURL)
}

func TestMockAuthFlow(t *testing.T) {
	creds := &memCreds{}
	m := newTestMock(creds, WithDemoAccount("Ops", "ops@example.com", "secret99"))
	ctx := context.Background()

	res, err := m.Login(ctx, "OPS@example.com", "secret99")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	creds.token = res.Token
	u, err := m.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", u.Email)
	assert.Equal(t, "Ops", u.Name)
	assert.Equal(t, "admin", u.Role)

	u, err = m.UpdateProfile(ctx, authModel.ProfileUpdate{Name: "Operations"})
	require.NoError(t, err)
	assert.Equal(t, "Operations", u.Name)
	assert.Equal(t, 0, creds.cleared)
}

func TestMockLogin_BadPassword(t *testing.T) {
	creds := &memCreds{token: "stale"}
	m := newTestMock(creds)

	_, err := m.Login(context.Background(), defaultDemoEmail, "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Invalid email or password", Message(err, "Login failed"))
	assert.Equal(t, 1, creds.cleared)
}

func TestMockGetProfile_ExpiredCredential(t *testing.T) {
	creds := &memCreds{}
	clock := fixedNow
	m := newTestMock(creds, WithClock(func() time.Time { return clock }))

	res, err := m.Login(context.Background(), defaultDemoEmail, defaultDemoPass)
	require.NoError(t, err)
	creds.token = res.Token

	clock = fixedNow.Add(25 * time.Hour)
	_, err = m.GetProfile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, creds.token)
	assert.Equal(t, 1, creds.cleared)
}

func TestMockGetProfile_ForeignCredential(t *testing.T) {
	creds := &memCreds{}
	signer := newTestMock(creds, WithSigningSecret("other"))
	res, err := signer.Login(context.Background(), defaultDemoEmail, defaultDemoPass)
	require.NoError(t, err)

	creds.token = res.Token
	m := newTestMock(creds)
	_, err = m.GetProfile(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, creds.token)
}

func TestMockRegister(t *testing.T) {
	m := newTestMock(&memCreds{})
	ctx := context.Background()

	res, err := m.Register(ctx, authModel.RegisterRequest{Name: "Trustee", Email: "t@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "school", res.User.Role)
	assert.NotEmpty(t, res.User.ID)

	_, err = m.Register(ctx, authModel.RegisterRequest{Name: "Again", Email: "T@example.com", Password: "hunter22"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "email already registered", Message(err, ""))

	_, err = m.Login(ctx, "t@example.com", "hunter22")
	assert.NoError(t, err)
}

func TestMockCanceledContext(t *testing.T) {
	m := newTestMock(&memCreds{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.GetAll(ctx, nil)
	assert.Equal(t, KindNetwork, KindOf(err))
}
