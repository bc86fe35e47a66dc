package database

import (
	"errors"
	"sync"
)

// ErrNotConfigured means no database URL was provided
var ErrNotConfigured = errors.New("database not configured")

// Provider opens the shared connection on first use. A failed attempt is not
// cached; the next caller tries again.
type Provider struct {
	url  string
	mu   sync.Mutex
	conn *DBConnection
	open func(name, url string) (*DBConnection, error)
}

// NewProvider returns a provider for url; an empty url is allowed and makes
// every Get fail with ErrNotConfigured.
func NewProvider(url string) *Provider {
	return &Provider{url: url, open: NewDBConnection}
}

// Configured reports whether a database URL is set
func (p *Provider) Configured() bool {
	return p.url != ""
}

// Get returns the shared connection, opening it if needed
func (p *Provider) Get() (*DBConnection, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		return p.conn, nil
	}
	conn, err := p.open("primary", p.url)
	if err != nil {
		return nil, err
	}
	p.conn = conn
	return conn, nil
}

// Close closes the connection if it was ever opened
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
