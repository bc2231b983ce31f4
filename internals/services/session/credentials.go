package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"schoolpay_dashboard/internals/constants"
	"schoolpay_dashboard/internals/features/preferences/repository"
)

const storeTimeout = 5 * time.Second

// Credentials is the persisted bearer credential. It is the only writer of
// the auth_token key and satisfies api.CredentialSource. Every Set and every
// effective clear starts a new generation.
type Credentials struct {
	store repository.Store

	// write serializes store writes with the in-memory copy
	write sync.Mutex

	mu        sync.RWMutex
	token     string
	gen       uint64
	listeners []func()
}

func NewCredentials(store repository.Store) *Credentials {
	return &Credentials{store: store}
}

// Load reads the persisted credential into memory. Call once at startup.
func (c *Credentials) Load(ctx context.Context) error {
	v, ok, err := c.store.Get(ctx, constants.StorageKeyAuthToken)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if ok {
		c.token = strings.TrimSpace(v)
	} else {
		c.token = ""
	}
	c.mu.Unlock()
	return nil
}

func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Credentials) Present() bool { return c.Token() != "" }

func (c *Credentials) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Set persists token. The in-memory copy is only replaced once the store
// accepted it.
func (c *Credentials) Set(ctx context.Context, token string) error {
	c.write.Lock()
	defer c.write.Unlock()
	if err := c.store.Set(ctx, constants.StorageKeyAuthToken, token); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = token
	c.gen++
	c.mu.Unlock()
	return nil
}

// Clear removes the credential and notifies OnClear listeners. Safe to call
// when nothing is stored.
func (c *Credentials) Clear() {
	c.clearWhen(func() bool { return true })
}

// Revoke clears the credential only if it is still token. A response denied
// for an old credential must not remove one stored after it was sent.
func (c *Credentials) Revoke(token string) {
	if token == "" {
		return
	}
	c.clearWhen(func() bool { return c.Token() == token })
}

// ClearIfUnchanged clears the credential unless it was set or cleared after
// gen was read.
func (c *Credentials) ClearIfUnchanged(gen uint64) bool {
	return c.clearWhen(func() bool { return c.Generation() == gen })
}

// IfUnchanged runs fn with Set and Clear held off, provided the credential is
// still at gen. OnClear listeners of a later clear run after fn.
func (c *Credentials) IfUnchanged(gen uint64, fn func()) bool {
	c.write.Lock()
	defer c.write.Unlock()
	if c.Generation() != gen {
		return false
	}
	fn()
	return true
}

func (c *Credentials) clearWhen(ok func() bool) bool {
	c.write.Lock()
	if !ok() {
		c.write.Unlock()
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	if err := c.store.Delete(ctx, constants.StorageKeyAuthToken); err != nil {
		log.Printf("[SESSION] delete credential: %v", err)
	}
	cancel()

	c.mu.Lock()
	c.token = ""
	c.gen++
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	c.write.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

// OnClear registers fn to run after every clear.
func (c *Credentials) OnClear(fn func()) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}
