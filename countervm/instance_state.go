// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"errors"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

const (
	instanceCacheSize = 1024
)

var _ InstanceState = &instanceState{}

// Instance is the host's record of an instantiated contract.
type Instance struct {
	Address  ids.ShortID `serialize:"true" json:"address"`
	Creator  ids.ShortID `serialize:"true" json:"creator"`
	Label    string      `serialize:"true" json:"label"`
	CodeName string      `serialize:"true" json:"codeName"`
}

type InstanceState interface {
	// GetInstance returns ErrUnknownContract if [addr] was never instantiated.
	GetInstance(addr ids.ShortID) (*Instance, error)
	PutInstance(inst *Instance) error

	ClearCache()
}

type instanceState struct {
	instCache  cache.Cacher
	instanceDB database.Database
}

func NewInstanceState(db database.Database) InstanceState {
	return &instanceState{
		instCache:  &cache.LRU{Size: instanceCacheSize},
		instanceDB: db,
	}
}

func (s *instanceState) GetInstance(addr ids.ShortID) (*Instance, error) {
	if instIntf, ok := s.instCache.Get(addr); ok {
		return instIntf.(*Instance), nil
	}

	instBytes, err := s.instanceDB.Get(addr[:])
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUnknownContract
	}
	if err != nil {
		return nil, err
	}

	inst := &Instance{}
	if err := unmarshal(instBytes, inst); err != nil {
		return nil, err
	}

	s.instCache.Put(addr, inst)
	return inst, nil
}

func (s *instanceState) PutInstance(inst *Instance) error {
	bytes, err := Codec.Marshal(CodecVersion, inst)
	if err != nil {
		return err
	}

	s.instCache.Put(inst.Address, inst)
	return s.instanceDB.Put(inst.Address[:], bytes)
}

func (s *instanceState) ClearCache() {
	s.instCache.Flush()
}
