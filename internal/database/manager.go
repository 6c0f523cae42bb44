package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DBManager owns the bounded connection pool shared by every request.
// MaxConns is the hard upper bound on concurrent store operations.
type DBManager struct {
	pool *pgxpool.Pool
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// ConnString builds a postgres URL, escaping credentials.
func (c Config) ConnString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}

func NewDBManager(ctx context.Context, cfg Config) (*DBManager, error) {
	return Connect(ctx, cfg.ConnString(), cfg)
}

// Connect opens the pool from an explicit connection string and applies the
// pool limits from cfg.
func Connect(ctx context.Context, connString string, cfg Config) (*DBManager, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DBManager{pool: pool}, nil
}

func (m *DBManager) Pool() *pgxpool.Pool {
	return m.pool
}

func (m *DBManager) Ping(ctx context.Context) error {
	return m.pool.Ping(ctx)
}

func (m *DBManager) Close() {
	if m.pool != nil {
		m.pool.Close()
	}
}

func (m *DBManager) Stats() map[string]interface{} {
	stat := m.pool.Stat()
	return map[string]interface{}{
		"max_conns":      stat.MaxConns(),
		"total_conns":    stat.TotalConns(),
		"idle_conns":     stat.IdleConns(),
		"acquired_conns": stat.AcquiredConns(),
	}
}
