// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

// ConfigKey is the store key of the counter's State record.
const ConfigKey = "config"

// State is the single record a counter persists.
type State struct {
	Count int32       `serialize:"true" json:"count"`
	Owner ids.ShortID `serialize:"true" json:"owner"`
}

// LoadState reads the State record, returning ErrUninitialized if the counter
// was never instantiated.
func LoadState(store ReadStore) (*State, error) {
	stateBytes, err := store.Get([]byte(ConfigKey))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUninitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	state := &State{}
	if err := unmarshal(stateBytes, state); err != nil {
		return nil, err
	}
	return state, nil
}

func encodeState(state *State) ([]byte, error) {
	stateBytes, err := Codec.Marshal(CodecVersion, state)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return stateBytes, nil
}

func saveState(store Store, state *State) error {
	stateBytes, err := encodeState(state)
	if err != nil {
		return err
	}
	return store.Set([]byte(ConfigKey), stateBytes)
}

// updateState is a single read-modify-write of the State record. Nothing is
// written if [update] fails.
func updateState(store Store, update func(*State) error) (*State, error) {
	state, err := LoadState(store)
	if err != nil {
		return nil, err
	}
	if err := update(state); err != nil {
		return nil, err
	}
	return state, saveState(store, state)
}

func unmarshal(b []byte, dest interface{}) error {
	parsedVersion, err := Codec.Unmarshal(b, dest)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	if parsedVersion != CodecVersion {
		return fmt.Errorf("%w: unexpected codec version %d", ErrSerialization, parsedVersion)
	}
	return nil
}
