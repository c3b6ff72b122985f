// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

// ID is a unique identifier for this VM
var ID = ids.ID{'c', 'o', 'u', 'n', 't', 'e', 'r', 'v', 'm'}

// Factory builds hosts running the counter contract
type Factory struct{}

// New returns a Host running Counter on top of [db]
func (f *Factory) New(db database.Database) *Host {
	return NewHost(db, CodeName, &Counter{})
}
