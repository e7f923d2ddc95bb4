package extdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"portal-service/pkg/config"
	"portal-service/prometheus"
)

// Client wraps a connection pool against one external customer database.
// The databases are opaque pass-through sources; every query runs under the
// configured timeout and releases its pooled connection on all exit paths.
type Client struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// Connect opens a pool against the external database. Connection
// establishment is bounded by the configured connect timeout.
func Connect(ctx context.Context, dsn string, cfg *config.ExtDBConfig) (*Client, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse external DSN: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to external database: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping external database: %w", err)
	}

	return &Client{pool: pool, queryTimeout: cfg.QueryTimeout}, nil
}

// CostCenter is one row of the customer's cost-center table
type CostCenter struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ExpenseType is one row of the customer's expense-type table
type ExpenseType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CostCenters lists the customer's cost centers
func (c *Client) CostCenters(ctx context.Context) ([]CostCenter, error) {
	defer trackQuery("cost_centers")()

	queryCtx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	conn, err := c.pool.Acquire(queryCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(queryCtx,
		`SELECT codigo, descricao FROM centros_custo ORDER BY descricao, codigo`)
	if err != nil {
		return nil, fmt.Errorf("cost center query failed: %w", err)
	}
	defer rows.Close()

	var out []CostCenter
	for rows.Next() {
		var cc CostCenter
		if err := rows.Scan(&cc.Code, &cc.Name); err != nil {
			return nil, fmt.Errorf("cost center scan failed: %w", err)
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cost center read failed: %w", err)
	}
	return out, nil
}

// ExpenseTypes lists the customer's expense types
func (c *Client) ExpenseTypes(ctx context.Context) ([]ExpenseType, error) {
	defer trackQuery("expense_types")()

	queryCtx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	conn, err := c.pool.Acquire(queryCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(queryCtx,
		`SELECT codigo, descricao FROM tipos_despesa ORDER BY descricao, codigo`)
	if err != nil {
		return nil, fmt.Errorf("expense type query failed: %w", err)
	}
	defer rows.Close()

	var out []ExpenseType
	for rows.Next() {
		var et ExpenseType
		if err := rows.Scan(&et.Code, &et.Name); err != nil {
			return nil, fmt.Errorf("expense type scan failed: %w", err)
		}
		out = append(out, et)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("expense type read failed: %w", err)
	}
	return out, nil
}

// Close releases the pool
func (c *Client) Close() {
	c.pool.Close()
}

func trackQuery(query string) func() {
	startTime := time.Now()
	return func() {
		prometheus.ExtDBQueryDuration.WithLabelValues(query).
			Observe(time.Since(startTime).Seconds())
	}
}

// Manager caches one Client per external connection row so repeated lookups
// reuse the pool instead of redialing.
type Manager struct {
	cfg     *config.ExtDBConfig
	mu      sync.Mutex
	clients map[uint]*Client
}

// NewManager creates an empty pool manager
func NewManager(cfg *config.ExtDBConfig) *Manager {
	return &Manager{cfg: cfg, clients: make(map[uint]*Client)}
}

// ClientFor returns the pooled client for a connection row, dialing on
// first use.
func (m *Manager) ClientFor(ctx context.Context, connectionID uint, dsn string) (*Client, error) {
	m.mu.Lock()
	if client, ok := m.clients[connectionID]; ok {
		m.mu.Unlock()
		return client, nil
	}
	m.mu.Unlock()

	// Dial outside the lock; the connect timeout would otherwise stall
	// every other lookup.
	client, err := Connect(ctx, dsn, m.cfg)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.clients[connectionID]; ok {
		client.Close()
		return existing, nil
	}
	m.clients[connectionID] = client
	return client, nil
}

// Close releases every pooled client
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, client := range m.clients {
		client.Close()
	}
	m.clients = make(map[uint]*Client)
}
