// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
	"github.com/ava-labs/avalanchego/ids"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix = []byte("singleton")
	instanceStatePrefix  = []byte("instance")
	contractStatePrefix  = []byte("contract")

	_ HostState = &hostState{}
)

// HostState is everything a host persists: the singleton values, the instance
// index and one store per contract. Writes stay pending until Commit and are
// dropped by Abort.
type HostState interface {
	SingletonState
	InstanceState

	// ContractDB returns the database backing the store of contract [addr].
	ContractDB(addr ids.ShortID) database.Database

	Commit() error
	Abort()
	Close() error
}

type hostState struct {
	SingletonState
	InstanceState

	contractDB database.Database
	baseDB     *versiondb.Database
}

func NewHostState(db database.Database) HostState {
	baseDB := versiondb.New(db)

	return &hostState{
		SingletonState: NewSingletonState(prefixdb.New(singletonStatePrefix, baseDB)),
		InstanceState:  NewInstanceState(prefixdb.New(instanceStatePrefix, baseDB)),
		contractDB:     prefixdb.New(contractStatePrefix, baseDB),
		baseDB:         baseDB,
	}
}

func (s *hostState) ContractDB(addr ids.ShortID) database.Database {
	return prefixdb.New(addr[:], s.contractDB)
}

// Commit flushes pending operations to the underlying database
func (s *hostState) Commit() error {
	return s.baseDB.Commit()
}

// Abort drops pending operations, along with any instance cached since the
// last commit.
func (s *hostState) Abort() {
	s.baseDB.Abort()
	s.ClearCache()
}

// Close closes the underlying base database
func (s *hostState) Close() error {
	return s.baseDB.Close()
}
