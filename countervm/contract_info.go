// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
)

// ContractInfoKey is the store key of the contract's name and version record.
const ContractInfoKey = "contract_info"

// Set at build time with
// -ldflags "-X github.com/ava-labs/countervm/countervm.ContractName=..."
var (
	ContractName    = "crates.io:countervm"
	ContractVersion = "0.1.0"
)

// ContractInfo records which code, at which version, wrote a contract's state.
// It is written once at instantiation and is used to drive migrations.
type ContractInfo struct {
	Contract string `serialize:"true" json:"contract"`
	Version  string `serialize:"true" json:"version"`
}

// SetContractVersion stores the name and version of the running code.
func SetContractVersion(store Store, name, version string) error {
	infoBytes, err := Codec.Marshal(CodecVersion, &ContractInfo{
		Contract: name,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return store.Set([]byte(ContractInfoKey), infoBytes)
}

// GetContractVersion returns the stored ContractInfo, or ErrUninitialized if
// none was ever written.
func GetContractVersion(store ReadStore) (*ContractInfo, error) {
	infoBytes, err := store.Get([]byte(ContractInfoKey))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrUninitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contract info: %w", err)
	}

	info := &ContractInfo{}
	if err := unmarshal(infoBytes, info); err != nil {
		return nil, err
	}
	return info, nil
}
