// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"github.com/ava-labs/avalanchego/database"
)

var (
	_ Store     = (*dbStore)(nil)
	_ ReadStore = (*readStore)(nil)
)

// ReadStore is the read capability the host hands to a query.
// Get returns database.ErrNotFound if [key] has never been set.
type ReadStore interface {
	Get(key []byte) ([]byte, error)
}

// Store is the read/write capability the host hands to instantiate and execute.
type Store interface {
	ReadStore
	Set(key, value []byte) error
}

type dbStore struct {
	db database.Database
}

// NewStore exposes [db] to the contract. Writes land in [db] directly, so the
// host decides what is committed by choosing [db].
func NewStore(db database.Database) Store {
	return &dbStore{db: db}
}

func (s *dbStore) Get(key []byte) ([]byte, error) { return s.db.Get(key) }
func (s *dbStore) Set(key, value []byte) error    { return s.db.Put(key, value) }

type readStore struct {
	db database.Database
}

// NewReadStore exposes [db] to the contract without a write path.
func NewReadStore(db database.Database) ReadStore {
	return &readStore{db: db}
}

func (s *readStore) Get(key []byte) ([]byte, error) { return s.db.Get(key) }
