package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/greenbasket/greenbasket-backend/pkg/config"
)

// Client wraps the gorm handle and owns transaction scoping.
type Client struct {
	gorm *gorm.DB
}

// New opens a postgres connection pool from config.
func New(cfg config.DBConfig) (*Client, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return &Client{gorm: gdb}, nil
}

// NewWithGorm wraps an existing handle. Used by tests running on sqlite.
func NewWithGorm(gdb *gorm.DB) *Client {
	return &Client{gorm: gdb}
}

// Gorm exposes the underlying handle for repository binding.
func (c *Client) Gorm() *gorm.DB {
	return c.gorm
}

// WithTx runs fn inside a transaction, rolling back on error.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.gorm.WithContext(ctx).Transaction(fn)
}

// Ping verifies the connection is alive, for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
