package repositories

import "context"

// RepositoryProvider bundles the stores a storage backend provides.
type RepositoryProvider struct {
	LedgerStore LedgerStore
	UserRepo    UserRepositoryFacade
	// Close releases the backend's resources. It may be nil.
	Close func() error
}

// Ping checks the ledger store when it supports health checks.
// Stores without a health check are treated as healthy.
func (p RepositoryProvider) Ping(ctx context.Context) error {
	if pinger, ok := p.LedgerStore.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}
