// Package bolt persists ledgers and users in a single bbolt file.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/general_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/general_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/general_ledger_app/internal/repositories/changefeed"
	bolt "go.etcd.io/bbolt"
)

// Bucket names.
const (
	BucketLedgers = "ledgers"
	BucketUsers   = "users"

	keyAccounts    = "accounts"
	keyEntries     = "entries"
	bucketCounters = "counters"
)

// Store wraps a bbolt database. Each ledger is a nested bucket of BucketLedgers.
type Store struct {
	db   *bolt.DB
	feed changefeed.Broadcaster
}

var (
	_ portsrepo.LedgerStore      = (*Store)(nil)
	_ portsrepo.SnapshotWriter   = (*Store)(nil)
	_ portsrepo.ChangeSubscriber = (*Store)(nil)
	_ portsrepo.Pinger           = (*Store)(nil)
)

// New opens the database at dbPath and initializes buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketLedgers, BucketUsers} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRepositoryProvider opens dbPath and exposes it as both ledger and user store.
func NewRepositoryProvider(dbPath string) (portsrepo.RepositoryProvider, error) {
	store, err := New(dbPath)
	if err != nil {
		return portsrepo.RepositoryProvider{}, err
	}
	return portsrepo.RepositoryProvider{
		LedgerStore: store,
		UserRepo:    &UserRepository{store: store},
		Close:       store.Close,
	}, nil
}

func (s *Store) LoadAccounts(ctx context.Context, ledgerID string) ([]domain.Account, error) {
	accounts := []domain.Account{}
	err := s.view(ledgerID, func(b *bolt.Bucket) error {
		return getJSON(b, keyAccounts, &accounts)
	})
	return accounts, err
}

func (s *Store) LoadEntries(ctx context.Context, ledgerID string) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	err := s.view(ledgerID, func(b *bolt.Bucket) error {
		return getJSON(b, keyEntries, &entries)
	})
	return entries, err
}

func (s *Store) LoadCounter(ctx context.Context, ledgerID, name string) (int64, error) {
	var value int64
	err := s.view(ledgerID, func(b *bolt.Bucket) error {
		counters := b.Bucket([]byte(bucketCounters))
		if counters == nil {
			return nil
		}
		if data := counters.Get([]byte(name)); len(data) == 8 {
			value = int64(binary.BigEndian.Uint64(data))
		}
		return nil
	})
	return value, err
}

func (s *Store) SaveAccounts(ctx context.Context, ledgerID string, accounts []domain.Account) error {
	err := s.update(ledgerID, func(b *bolt.Bucket) error {
		return putJSON(b, keyAccounts, accounts)
	})
	if err == nil {
		s.feed.Publish(ledgerID, domain.ChangeAccounts)
	}
	return err
}

func (s *Store) SaveEntries(ctx context.Context, ledgerID string, entries []domain.JournalEntry) error {
	err := s.update(ledgerID, func(b *bolt.Bucket) error {
		return putJSON(b, keyEntries, entries)
	})
	if err == nil {
		s.feed.Publish(ledgerID, domain.ChangeEntries)
	}
	return err
}

func (s *Store) SaveCounter(ctx context.Context, ledgerID, name string, value int64) error {
	err := s.update(ledgerID, func(b *bolt.Bucket) error {
		return putCounter(b, name, value)
	})
	if err == nil {
		s.feed.Publish(ledgerID, domain.ChangeCounter)
	}
	return err
}

// SaveSnapshot writes all collections of a ledger in one bbolt transaction.
func (s *Store) SaveSnapshot(ctx context.Context, ledgerID string, snapshot domain.LedgerSnapshot) error {
	err := s.update(ledgerID, func(b *bolt.Bucket) error {
		if err := putJSON(b, keyAccounts, snapshot.Accounts); err != nil {
			return err
		}
		if err := putJSON(b, keyEntries, snapshot.Entries); err != nil {
			return err
		}
		if err := putCounter(b, domain.CounterNextAccountID, snapshot.NextAccountID); err != nil {
			return err
		}
		return putCounter(b, domain.CounterNextEntryID, snapshot.NextEntryID)
	})
	if err == nil {
		s.feed.Publish(ledgerID, domain.ChangeSnapshot)
	}
	return err
}

// Subscribe notifies fn about writes made through this Store.
func (s *Store) Subscribe(ctx context.Context, ledgerID string, fn func(domain.ChangeEvent)) (func(), error) {
	return s.feed.Subscribe(ledgerID, fn), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketLedgers)) == nil {
			return fmt.Errorf("bucket %s not found", BucketLedgers)
		}
		return nil
	})
}

// view runs fn with the ledger's bucket. fn is not called for unknown ledgers.
func (s *Store) view(ledgerID string, fn func(b *bolt.Bucket) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketLedgers))
		if root == nil {
			return fmt.Errorf("bucket %s not found", BucketLedgers)
		}
		b := root.Bucket([]byte(ledgerID))
		if b == nil {
			return nil
		}
		return fn(b)
	})
}

func (s *Store) update(ledgerID string, fn func(b *bolt.Bucket) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(BucketLedgers))
		if root == nil {
			return fmt.Errorf("bucket %s not found", BucketLedgers)
		}
		b, err := root.CreateBucketIfNotExists([]byte(ledgerID))
		if err != nil {
			return fmt.Errorf("failed to create bucket for ledger %s: %w", ledgerID, err)
		}
		return fn(b)
	})
}

func getJSON(b *bolt.Bucket, key string, value any) error {
	data := b.Get([]byte(key))
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func putJSON(b *bolt.Bucket, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return b.Put([]byte(key), data)
}

func putCounter(b *bolt.Bucket, name string, value int64) error {
	counters, err := b.CreateBucketIfNotExists([]byte(bucketCounters))
	if err != nil {
		return err
	}
	return counters.Put([]byte(name), itob(value))
}

// itob converts an int64 to a byte slice for use as a bbolt value.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
