package scheduler

import (
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/robfig/cron/v3"

	"schoolpay_dashboard/internals/services/session"
)

// CredentialExpired reports whether token is a JWT whose exp has passed at
// now. Opaque or unparseable tokens are never considered expired; the
// backend stays the authority on those.
func CredentialExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), true)
}

// SweepOnce logs the session out locally if its credential has expired.
func SweepOnce(s *session.Session, now time.Time) bool {
	if !CredentialExpired(s.Credentials().Token(), now) {
		return false
	}
	log.Println("[SWEEP] credential expired, logging out")
	s.Logout()
	return true
}

// StartCredentialSweep runs SweepOnce on schedule (cron spec or @every).
// The returned cron must be stopped on shutdown.
func StartCredentialSweep(s *session.Session, schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() { SweepOnce(s, time.Now()) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("[SWEEP] credential sweep scheduled: %s", schedule)
	return c, nil
}
