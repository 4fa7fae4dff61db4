package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

const (
	maxConnectAttempts   = 10
	initialConnectDelay  = 2 * time.Second
)

// Open connects to MySQL and verifies the connection.  Connectivity failures
// are retried with exponential backoff (2s, 4s, 8s, ... capped at ten
// attempts) so the server survives a database that is still booting.  Only
// connection-level failures are retried; once the pool is handed out, query
// errors surface to callers unchanged.
func Open(log *zap.Logger, user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	delay := initialConnectDelay
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			log.Info("connected to mysql", zap.String("host", host), zap.String("database", name))
			return db, nil
		}
		if attempt >= maxConnectAttempts {
			_ = db.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt, err)
		}
		log.Warn("database connection failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		time.Sleep(delay)
		delay *= 2
	}
}
