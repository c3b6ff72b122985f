// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"fmt"
	"sync"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

const (
	Name = "countervm"

	// CodeName is the name instances of Counter are registered under.
	CodeName = "counter"
)

// Version of the host binary
var Version = "v0.1.0"

// Host runs contract calls against a database it owns.
//
// At most one call runs at a time. Every write a call makes is committed when
// the call succeeds and rolled back when it fails, so a contract never needs
// to undo its own partial writes.
type Host struct {
	lock sync.Mutex

	state    HostState
	contract Transport
	codeName string

	log log.Logger
}

// NewHost returns a host running [contract] on top of [db].
func NewHost(db database.Database, codeName string, contract Transport) *Host {
	return &Host{
		state:    NewHostState(db),
		contract: contract,
		codeName: codeName,
		log:      log.New("module", "host", "code", codeName),
	}
}

// Instantiate creates a new contract instance on behalf of [sender] and
// returns its address.
func (h *Host) Instantiate(sender ids.ShortID, label string, msg []byte) (ids.ShortID, *Response, error) {
	var (
		addr ids.ShortID
		resp *Response
	)
	err := h.call(func() error {
		sequence, err := h.state.NextSequence()
		if err != nil {
			return err
		}

		addr = ContractAddress(sender, sequence)
		if err := h.state.PutInstance(&Instance{
			Address:  addr,
			Creator:  sender,
			Label:    label,
			CodeName: h.codeName,
		}); err != nil {
			return fmt.Errorf("failed to put instance %s: %w", addr, err)
		}

		env := Env{Contract: addr}
		info := MessageInfo{Sender: sender}
		resp, err = h.contract.Instantiate(NewStore(h.state.ContractDB(addr)), env, info, msg)
		return err
	})
	if err != nil {
		h.log.Debug("instantiate failed", "sender", sender, "label", label, "err", err)
		return ids.ShortEmpty, nil, err
	}

	h.log.Info("instantiated contract", "contract", addr, "sender", sender, "label", label)
	return addr, resp, nil
}

// Execute runs [msg] against contract [addr] on behalf of [sender].
func (h *Host) Execute(sender, addr ids.ShortID, msg []byte) (*Response, error) {
	var resp *Response
	err := h.call(func() error {
		if _, err := h.state.GetInstance(addr); err != nil {
			return err
		}

		env := Env{Contract: addr}
		info := MessageInfo{Sender: sender}
		var err error
		resp, err = h.contract.Execute(NewStore(h.state.ContractDB(addr)), env, info, msg)
		return err
	})
	if err != nil {
		h.log.Debug("execute failed", "contract", addr, "sender", sender, "err", err)
		return nil, err
	}

	h.log.Debug("executed contract", "contract", addr, "sender", sender, "attributes", resp.Attributes)
	return resp, nil
}

// Query runs [msg] against contract [addr]. Queries never write.
func (h *Host) Query(addr ids.ShortID, msg []byte) ([]byte, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, err := h.state.GetInstance(addr); err != nil {
		return nil, err
	}
	return h.contract.Query(NewReadStore(h.state.ContractDB(addr)), Env{Contract: addr}, msg)
}

// Instance returns the host's record of contract [addr].
func (h *Host) Instance(addr ids.ShortID) (*Instance, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.state.GetInstance(addr)
}

// ContractInfo returns the code name and version contract [addr] was
// instantiated with.
func (h *Host) ContractInfo(addr ids.ShortID) (*ContractInfo, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, err := h.state.GetInstance(addr); err != nil {
		return nil, err
	}
	return GetContractVersion(NewReadStore(h.state.ContractDB(addr)))
}

// Shutdown closes the host's database
func (h *Host) Shutdown() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.state.Close()
}

// call runs [fn] as one atomic unit against the host state.
func (h *Host) call(fn func() error) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if err := fn(); err != nil {
		h.state.Abort()
		return err
	}
	if err := h.state.Commit(); err != nil {
		h.state.Abort()
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
