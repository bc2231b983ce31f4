package configs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	APIBaseURL              string
	DemoEmail               string
	DemoPassword            string
	DemoJWTSecret           string
	CredentialSweepSchedule string
	CorsOrigins             []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] .env not found, using system environment")
	} else {
		log.Println("[CONFIG] .env loaded")
	}

	APIBaseURL = strings.TrimRight(strings.TrimSpace(GetEnv("API_BASE_URL")), "/")
	DemoEmail = GetEnv("DEMO_EMAIL", "admin@schoolpay.dev")
	DemoPassword = GetEnv("DEMO_PASSWORD", "demo1234")
	DemoJWTSecret = GetEnv("DEMO_JWT_SECRET", "schoolpay-demo-secret")
	CredentialSweepSchedule = GetEnv("CREDENTIAL_SWEEP_SCHEDULE", "@every 5m")
	CorsOrigins = splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"))

	if IsDemo() {
		log.Println("[CONFIG] API_BASE_URL not set, running in demo mode")
	} else {
		log.Printf("[CONFIG] backend: %s", APIBaseURL)
	}
}

// IsDemo reports whether no backend is configured.
func IsDemo() bool {
	return APIBaseURL == ""
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
