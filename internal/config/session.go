package config

import (
	"os"
	"sync"
	"time"
)

type SessionConfig struct {
	TTL        time.Duration
	CookieName string
}

var (
	sessionConfig *SessionConfig
	sessionOnce   sync.Once
)

func LoadSessionConfig() *SessionConfig {
	sessionOnce.Do(func() {
		cookie := os.Getenv("SESSION_COOKIE")
		if cookie == "" {
			cookie = "cc_session"
		}
		sessionConfig = &SessionConfig{
			TTL:        durationEnv("SESSION_TTL", 2*time.Hour),
			CookieName: cookie,
		}
	})
	return sessionConfig
}
