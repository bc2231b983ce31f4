// Package session owns who is logged in. A Session moves from initializing
// to anonymous or authenticated and then between those two; the persisted
// credential lives in Credentials so the API layer can clear it on its own.
package session

import (
	"context"
	"log"
	"strings"
	"sync"

	"schoolpay_dashboard/internals/constants"
	authModel "schoolpay_dashboard/internals/features/auth/model"
	"schoolpay_dashboard/internals/metrics"
	"schoolpay_dashboard/internals/services/api"
)

type State struct {
	User          *authModel.User `json:"user"`
	Loading       bool            `json:"loading"`
	Authenticated bool            `json:"authenticated"`
}

type Session struct {
	client api.AuthAPI
	creds  *Credentials

	mu      sync.RWMutex
	user    *authModel.User
	loading bool
}

// New returns a session in the initializing state. Any credential clear,
// including one caused by a 401 elsewhere, drops the current user.
func New(client api.AuthAPI, creds *Credentials) *Session {
	s := &Session{client: client, creds: creds, loading: true}
	creds.OnClear(s.dropUser)
	return s
}

func (s *Session) Credentials() *Credentials { return s.creds }

// Init validates a persisted credential with a profile fetch. It always
// leaves the session settled. A login or logout that lands while the fetch
// is running wins: Init then neither clears the credential nor sets a user.
func (s *Session) Init(ctx context.Context) {
	defer s.settle()

	gen := s.creds.Generation()
	if !s.creds.Present() {
		event("anonymous")
		return
	}
	u, err := s.client.GetProfile(ctx)
	if err != nil || u == nil {
		log.Printf("[SESSION] stored credential rejected: %v", err)
		s.creds.ClearIfUnchanged(gen)
		event("restore_failed")
		return
	}
	if !s.creds.IfUnchanged(gen, func() { s.setUser(u) }) {
		log.Println("[SESSION] credential changed during restore, result dropped")
		event("restore_superseded")
		return
	}
	event("restored")
}

func (s *Session) Login(ctx context.Context, email, password string) authModel.LoginResult {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return s.fail(err)
	}
	token := strings.TrimSpace(res.Token)
	if token == "" {
		event("login_failed")
		return authModel.LoginResult{Success: false, Message: constants.ErrNoCredential}
	}
	if err := s.creds.Set(ctx, token); err != nil {
		return s.fail(err)
	}

	u, err := s.client.GetProfile(ctx)
	if err != nil {
		return s.fail(err)
	}
	if u == nil {
		s.creds.Clear()
		event("login_failed")
		return authModel.LoginResult{Success: false, Message: constants.ErrLoginFailed}
	}
	s.setUser(u)
	event("login")
	return authModel.LoginResult{Success: true}
}

func (s *Session) fail(err error) authModel.LoginResult {
	s.creds.Clear()
	event("login_failed")
	return authModel.LoginResult{Success: false, Message: api.ErrorText(err, constants.ErrLoginFailed)}
}

// Logout is local only.
func (s *Session) Logout() {
	s.creds.Clear()
	event("logout")
}

func (s *Session) Register(ctx context.Context, req authModel.RegisterRequest) (authModel.RegisterResponse, error) {
	return s.client.Register(ctx, req)
}

// UpdateProfile pushes changes upstream and adopts the returned user.
func (s *Session) UpdateProfile(ctx context.Context, req authModel.ProfileUpdate) (*authModel.User, error) {
	u, err := s.client.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	if u != nil {
		s.setUser(u)
	}
	return s.CurrentUser(), nil
}

// CurrentUser returns a copy of the user, or nil.
func (s *Session) CurrentUser() *authModel.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) Snapshot() State {
	u := s.CurrentUser()
	return State{User: u, Loading: s.Loading(), Authenticated: u != nil}
}

func (s *Session) setUser(u *authModel.User) {
	cp := *u
	s.mu.Lock()
	s.user = &cp
	s.mu.Unlock()
}

func (s *Session) dropUser() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func event(name string) {
	metrics.SessionEvents.WithLabelValues(name).Inc()
}
