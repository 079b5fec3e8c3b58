package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const maxInsertAttempts = 16

// Store is the scenario corpus. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

func Open(cfg Config) (*Store, error) {
	db, err := openEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

func (s *Store) check(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

// Insert stores sc unless a scenario with the same catalog and script is
// already there, in which case that one is returned and created is false.
// The lookup and the writes share one transaction; a commit that races
// another insert is retried.
func (s *Store) Insert(ctx context.Context, sc *Scenario) (stored *Scenario, created bool, err error) {
	if err := s.check(ctx); err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(sc)
	if err != nil {
		return nil, false, fmt.Errorf("encode scenario %s: %w", sc.ID, err)
	}
	fpKey := fingerprintKey(fingerprint(sc.Catalog, sc.Script))

	for attempt := 1; ; attempt++ {
		err = s.db.Update(func(txn *badger.Txn) error {
			existing, err := findByKey(txn, fpKey)
			if err == nil {
				stored, created = existing, false
				return nil
			}
			if !errors.Is(err, ErrNotFound) {
				return err
			}

			if err := txn.Set(scenarioKey(sc.ID), data); err != nil {
				return err
			}
			stored, created = sc, true
			return txn.Set(fpKey, sc.ID[:])
		})
		if !errors.Is(err, badger.ErrConflict) || attempt == maxInsertAttempts {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
	}
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Scenario, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var sc *Scenario
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		sc, err = getScenario(txn, id)
		return err
	})
	return sc, err
}

// FindScript returns the stored scenario for the same operation set, or
// ErrNotFound.
func (s *Store) FindScript(ctx context.Context, catalog []string, script string) (*Scenario, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var sc *Scenario
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		sc, err = findByKey(txn, fingerprintKey(fingerprint(catalog, script)))
		return err
	})
	return sc, err
}

// List returns every scenario, oldest first.
func (s *Store) List(ctx context.Context) ([]*Scenario, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var out []*Scenario
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(scenarioPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var sc Scenario
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &sc)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, &sc)
		}
		return nil
	})
	return out, err
}

func findByKey(txn *badger.Txn, fpKey []byte) (*Scenario, error) {
	item, err := txn.Get(fpKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	raw, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("corrupt fingerprint index: %w", err)
	}
	return getScenario(txn, id)
}

func getScenario(txn *badger.Txn, id uuid.UUID) (*Scenario, error) {
	item, err := txn.Get(scenarioKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var sc Scenario
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &sc)
	})
	if err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", id, err)
	}
	return &sc, nil
}
