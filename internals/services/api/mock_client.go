package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authModel "schoolpay_dashboard/internals/features/auth/model"
	paymentModel "schoolpay_dashboard/internals/features/payments/model"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
)

const (
	demoTokenTTL      = 24 * time.Hour
	defaultDemoSecret = "schoolpay-demo-secret"
	defaultDemoName   = "Demo Admin"
	defaultDemoEmail  = "admin@schoolpay.dev"
	defaultDemoPass   = "demo1234"
)

// MockClient serves generated transactions and an in-memory demo account
// store. It never performs network I/O.
type MockClient struct {
	creds  CredentialSource
	secret []byte
	now    func() time.Time
	cost   int

	mu      sync.RWMutex
	users   map[string]*demoUser // by id
	byEmail map[string]string    // lowercased email -> id

	seedName, seedEmail, seedPassword string
}

type demoUser struct {
	authModel.User
	hash []byte
}

type demoClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type MockOption func(*MockClient)

func WithSigningSecret(secret string) MockOption {
	return func(m *MockClient) { m.secret = []byte(secret) }
}

// WithClock replaces time.Now for record generation and token expiry.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockClient) { m.now = now }
}

// WithDemoAccount replaces the seeded demo account.
func WithDemoAccount(name, email, password string) MockOption {
	return func(m *MockClient) {
		m.seedName, m.seedEmail, m.seedPassword = name, email, password
	}
}

// WithHashCost sets the bcrypt cost for stored demo passwords.
func WithHashCost(cost int) MockOption {
	return func(m *MockClient) { m.cost = cost }
}

func NewMockClient(creds CredentialSource, opts ...MockOption) *MockClient {
	m := &MockClient{
		creds:        creds,
		secret:       []byte(defaultDemoSecret),
		now:          time.Now,
		cost:         bcrypt.DefaultCost,
		users:        map[string]*demoUser{},
		byEmail:      map[string]string{},
		seedName:     defaultDemoName,
		seedEmail:    defaultDemoEmail,
		seedPassword: defaultDemoPass,
	}
	for _, opt := range opts {
		opt(m)
	}
	if _, err := m.addUser(m.seedName, m.seedEmail, m.seedPassword, "admin"); err != nil {
		log.Printf("[API] demo account not seeded: %v", err)
	}
	return m
}

func (m *MockClient) GetAll(ctx context.Context, params Params) (txModel.TransactionPage, error) {
	if err := ctx.Err(); err != nil {
		return txModel.TransactionPage{}, &Error{Op: "transactions.list", Kind: KindNetwork, Err: err}
	}
	mq := parseMockQuery(CleanParams(params))
	items := mq.apply(GenerateTransactions(mockListBatch, m.now()), true)
	record("transactions.list", "demo")
	return Paginate(items, mq.page, mq.limit), nil
}

func (m *MockClient) GetBySchool(ctx context.Context, schoolID string, params Params) (txModel.TransactionPage, error) {
	if err := ctx.Err(); err != nil {
		return txModel.TransactionPage{}, &Error{Op: "transactions.school", Kind: KindNetwork, Err: err}
	}
	items := GenerateTransactions(mockSchoolBatch, m.now())
	for i := range items {
		items[i].SchoolID = schoolID
	}
	mq := parseMockQuery(CleanParams(params))
	items = mq.apply(items, false)
	record("transactions.school", "demo")
	return Paginate(items, mq.page, mq.limit), nil
}

func (m *MockClient) GetStatus(ctx context.Context, orderID string) (*txModel.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: "transactions.status", Kind: KindNetwork, Err: err}
	}
	record("transactions.status", "demo")
	for _, t := range GenerateTransactions(mockStatusBatch, m.now()) {
		if t.CustomOrderID == orderID {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockClient) CreatePayment(ctx context.Context, req paymentModel.PaymentRequest) (paymentModel.PaymentResult, error) {
	if err := ctx.Err(); err != nil {
		return paymentModel.PaymentResult{}, &Error{Op: "payment.create", Kind: KindNetwork, Err: err}
	}
	record("payment.create", "demo")
	log.Printf("[API] demo payment %s: %s %s via %s", req.OrderID, req.OrderAmount.StringFixed(2), req.SchoolID, req.GatewayName)
	return paymentModel.PaymentResult{CustomOrderID: req.OrderID}, nil
}

func (m *MockClient) Login(ctx context.Context, email, password string) (authModel.LoginResponse, error) {
	const op = "auth.login"
	if err := ctx.Err(); err != nil {
		return authModel.LoginResponse{}, &Error{Op: op, Kind: KindNetwork, Err: err}
	}

	var (
		user authModel.User
		hash []byte
	)
	m.mu.RLock()
	if u := m.lookupEmail(email); u != nil {
		user, hash = u.User, u.hash
	}
	m.mu.RUnlock()

	if hash == nil || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		record(op, KindUnauthorized.String())
		m.creds.Clear()
		return authModel.LoginResponse{}, &Error{Op: op, Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	}

	token, err := m.sign(user)
	if err != nil {
		return authModel.LoginResponse{}, &Error{Op: op, Kind: KindServer, Err: err}
	}
	record(op, "demo")
	return authModel.LoginResponse{Token: token, Message: "Login successful"}, nil
}

func (m *MockClient) Register(ctx context.Context, req authModel.RegisterRequest) (authModel.RegisterResponse, error) {
	const op = "auth.register"
	if err := ctx.Err(); err != nil {
		return authModel.RegisterResponse{}, &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	role := req.Role
	if role == "" {
		role = "school"
	}
	u, err := m.addUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		record(op, KindValidation.String())
		return authModel.RegisterResponse{}, &Error{Op: op, Kind: KindValidation, Status: http.StatusBadRequest, Message: err.Error()}
	}
	record(op, "demo")
	return authModel.RegisterResponse{Message: "User registered successfully", User: &u}, nil
}

func (m *MockClient) GetProfile(ctx context.Context) (*authModel.User, error) {
	const op = "auth.profile"
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	u, err := m.authenticate(op)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := u.User
	m.mu.RUnlock()
	record(op, "demo")
	return &out, nil
}

func (m *MockClient) UpdateProfile(ctx context.Context, req authModel.ProfileUpdate) (*authModel.User, error) {
	const op = "auth.profile.update"
	if err := ctx.Err(); err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	u, err := m.authenticate(op)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if email := strings.TrimSpace(req.Email); email != "" && !strings.EqualFold(email, u.Email) {
		key := strings.ToLower(email)
		if _, taken := m.byEmail[key]; taken {
			record(op, KindValidation.String())
			return nil, &Error{Op: op, Kind: KindValidation, Status: http.StatusConflict, Message: errEmailTaken.Error()}
		}
		delete(m.byEmail, strings.ToLower(u.Email))
		m.byEmail[key] = u.ID
		u.Email = email
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		u.Name = name
	}
	record(op, "demo")
	out := u.User
	return &out, nil
}

// authenticate resolves the persisted credential to a stored user. Any
// failure clears the credential the same way a backend 401 would.
func (m *MockClient) authenticate(op string) (*demoUser, error) {
	raw := m.creds.Token()
	deny := func(msg string) error {
		record(op, KindUnauthorized.String())
		m.creds.Revoke(raw)
		log.Printf("[API] %s: %s, credential removed", op, msg)
		return &Error{Op: op, Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: "Unauthorized"}
	}

	if raw == "" {
		return nil, deny("no credential")
	}
	var claims demoClaims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, deny("invalid credential")
	}
	if !claims.VerifyExpiresAt(m.now(), true) {
		return nil, deny("expired credential")
	}

	m.mu.RLock()
	u := m.users[claims.Subject]
	m.mu.RUnlock()
	if u == nil {
		return nil, deny("unknown subject")
	}
	return u, nil
}

func (m *MockClient) sign(u authModel.User) (string, error) {
	now := m.now()
	claims := demoClaims{
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(demoTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

var errEmailTaken = errors.New("email already registered")

func (m *MockClient) addUser(name, email, password, role string) (authModel.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return authModel.User{}, errors.New("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return authModel.User{}, fmt.Errorf("hash password: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(email)
	if _, taken := m.byEmail[key]; taken {
		return authModel.User{}, errEmailTaken
	}
	u := &demoUser{
		User: authModel.User{ID: uuid.NewString(), Name: strings.TrimSpace(name), Email: email, Role: role},
		hash: hash,
	}
	m.users[u.ID] = u
	m.byEmail[key] = u.ID
	return u.User, nil
}

// lookupEmail must be called with mu held.
func (m *MockClient) lookupEmail(email string) *demoUser {
	id, ok := m.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil
	}
	return m.users[id]
}
