// Package api is the dashboard's only way to talk to the payments backend.
//
// The Client interface has two implementations: RealClient speaks the
// backend's REST contract over HTTP, MockClient fabricates deterministic
// demo data behind the same signatures. New picks one once at startup;
// everything downstream holds a Client and cannot tell the modes apart.
package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	authModel "schoolpay_dashboard/internals/features/auth/model"
	paymentModel "schoolpay_dashboard/internals/features/payments/model"
	txModel "schoolpay_dashboard/internals/features/transactions/model"
	"schoolpay_dashboard/internals/metrics"
)

type TransactionAPI interface {
	GetAll(ctx context.Context, params Params) (txModel.TransactionPage, error)
	GetBySchool(ctx context.Context, schoolID string, params Params) (txModel.TransactionPage, error)
	// GetStatus returns (nil, nil) when no transaction has that custom order id.
	GetStatus(ctx context.Context, orderID string) (*txModel.Transaction, error)
}

type PaymentAPI interface {
	CreatePayment(ctx context.Context, req paymentModel.PaymentRequest) (paymentModel.PaymentResult, error)
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (authModel.LoginResponse, error)
	Register(ctx context.Context, req authModel.RegisterRequest) (authModel.RegisterResponse, error)
	GetProfile(ctx context.Context) (*authModel.User, error)
	UpdateProfile(ctx context.Context, req authModel.ProfileUpdate) (*authModel.User, error)
}

type Client interface {
	TransactionAPI
	PaymentAPI
	AuthAPI
}

// CredentialSource is the persisted bearer credential as the request layer
// sees it. Revoke is called with the sent token on any authorization-denied
// response; Clear drops whatever is stored.
type CredentialSource interface {
	Token() string
	Clear()
	Revoke(token string)
}

type Config struct {
	BaseURL    string
	HTTPClient *http.Client

	DemoEmail    string
	DemoPassword string
	DemoSecret   string
}

// New evaluates the mode switch: no base URL means demo mode.
func New(cfg Config, creds CredentialSource) Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		log.Println("[API] demo mode: serving generated data")
		opts := []MockOption{}
		if cfg.DemoSecret != "" {
			opts = append(opts, WithSigningSecret(cfg.DemoSecret))
		}
		if cfg.DemoEmail != "" && cfg.DemoPassword != "" {
			opts = append(opts, WithDemoAccount("Demo Admin", cfg.DemoEmail, cfg.DemoPassword))
		}
		return NewMockClient(creds, opts...)
	}
	opts := []Option{}
	if cfg.HTTPClient != nil {
		opts = append(opts, WithHTTPClient(cfg.HTTPClient))
	}
	log.Printf("[API] backend mode: %s", cfg.BaseURL)
	return NewRealClient(cfg.BaseURL, creds, opts...)
}

// IsDemo reports whether c fabricates its data.
func IsDemo(c Client) bool {
	_, ok := c.(*MockClient)
	return ok
}

func record(op, outcome string) {
	metrics.BackendRequests.WithLabelValues(op, outcome).Inc()
}
