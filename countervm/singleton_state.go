// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	SequenceKey byte = iota
)

var (
	sequenceKey                = []byte{SequenceKey}
	_           SingletonState = (*singletonState)(nil)
)

// SingletonState holds the host-wide values that have exactly one instance.
type SingletonState interface {
	// NextSequence returns the current instantiation sequence and advances it.
	NextSequence() (uint64, error)
}

type singletonState struct {
	singletonDB database.Database
}

func NewSingletonState(db database.Database) SingletonState {
	return &singletonState{
		singletonDB: db,
	}
}

func (s *singletonState) NextSequence() (uint64, error) {
	var sequence uint64
	seqBytes, err := s.singletonDB.Get(sequenceKey)
	switch {
	case err == nil:
		if len(seqBytes) != wrappers.LongLen {
			return 0, fmt.Errorf("malformed sequence of length %d", len(seqBytes))
		}
		sequence = binary.BigEndian.Uint64(seqBytes)
	case !errors.Is(err, database.ErrNotFound):
		return 0, fmt.Errorf("failed to read sequence: %w", err)
	}

	next := make([]byte, wrappers.LongLen)
	binary.BigEndian.PutUint64(next, sequence+1)
	if err := s.singletonDB.Put(sequenceKey, next); err != nil {
		return 0, fmt.Errorf("failed to write sequence: %w", err)
	}
	return sequence, nil
}
