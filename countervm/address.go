// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// ContractAddress derives the address of the [sequence]th contract
// instantiated on a host, as requested by [creator].
func ContractAddress(creator ids.ShortID, sequence uint64) ids.ShortID {
	preimage := make([]byte, len(creator)+wrappers.LongLen)
	copy(preimage, creator[:])
	binary.BigEndian.PutUint64(preimage[len(creator):], sequence)
	return ids.ShortID(hashing.ComputeHash160Array(preimage))
}

// AddressFromName derives a deterministic account address from a human
// readable name. Used by tests and local tooling only.
func AddressFromName(name string) ids.ShortID {
	return ids.ShortID(hashing.ComputeHash160Array([]byte(name)))
}

// ParseAddress accepts either a CB58 address or an account name.
func ParseAddress(s string) ids.ShortID {
	if addr, err := ids.ShortFromString(s); err == nil {
		return addr
	}
	return AddressFromName(s)
}
