// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

var _ Transport = (*Counter)(nil)

// Env describes the contract being called.
type Env struct {
	Contract ids.ShortID
}

// MessageInfo describes who is calling.
type MessageInfo struct {
	Sender ids.ShortID
}

// Attribute is a key/value pair a successful call reports to the host.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is the result of a successful instantiate or execute.
type Response struct {
	Attributes []Attribute `json:"attributes"`
	Data       []byte      `json:"data,omitempty"`
}

func NewResponse() *Response {
	return &Response{Attributes: []Attribute{}}
}

// AddAttribute appends [key]=[value] and returns [r] for chaining.
func (r *Response) AddAttribute(key, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

// Transport is the calling convention between a host and a contract. The host
// calls exactly one method per transaction or query, with the store of the
// contract instance being called. Messages and query results travel as bytes.
type Transport interface {
	Instantiate(store Store, env Env, info MessageInfo, msg []byte) (*Response, error)
	Execute(store Store, env Env, info MessageInfo, msg []byte) (*Response, error)
	Query(store ReadStore, env Env, msg []byte) ([]byte, error)
}

// Counter is a counter that anyone may increment and only its owner may reset.
type Counter struct{}

func (*Counter) Instantiate(store Store, _ Env, info MessageInfo, msg []byte) (*Response, error) {
	instantiateMsg, err := ParseInstantiateMsg(msg)
	if err != nil {
		return nil, err
	}
	return Instantiate(store, info, instantiateMsg)
}

func (*Counter) Execute(store Store, _ Env, info MessageInfo, msg []byte) (*Response, error) {
	executeMsg, err := ParseExecuteMsg(msg)
	if err != nil {
		return nil, err
	}
	return Execute(store, info, executeMsg)
}

func (*Counter) Query(store ReadStore, _ Env, msg []byte) ([]byte, error) {
	queryMsg, err := ParseQueryMsg(msg)
	if err != nil {
		return nil, err
	}
	return Query(store, queryMsg)
}

// Instantiate creates the State record, owned by the caller.
func Instantiate(store Store, info MessageInfo, msg InstantiateMsg) (*Response, error) {
	switch _, err := store.Get([]byte(ConfigKey)); {
	case err == nil:
		return nil, ErrAlreadyInitialized
	case !errors.Is(err, database.ErrNotFound):
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	// Encode before writing anything so a failed encode leaves the store as it was.
	stateBytes, err := encodeState(&State{
		Count: msg.Count,
		Owner: info.Sender,
	})
	if err != nil {
		return nil, err
	}
	if err := SetContractVersion(store, ContractName, ContractVersion); err != nil {
		return nil, err
	}
	if err := store.Set([]byte(ConfigKey), stateBytes); err != nil {
		return nil, fmt.Errorf("failed to write state: %w", err)
	}

	return NewResponse().
		AddAttribute("method", "instantiate").
		AddAttribute("owner", info.Sender.String()).
		AddAttribute("count", strconv.FormatInt(int64(msg.Count), 10)), nil
}

// Execute dispatches [msg] on its variant.
func Execute(store Store, info MessageInfo, msg ExecuteMsg) (*Response, error) {
	switch {
	case msg.Increment != nil:
		return executeIncrement(store)
	case msg.Reset != nil:
		return executeReset(store, info, msg.Reset.Count)
	default:
		return nil, fmt.Errorf("%w: empty execute message", ErrMalformedMessage)
	}
}

// executeIncrement adds one for any caller. The counter wraps around at
// math.MaxInt32.
func executeIncrement(store Store) (*Response, error) {
	_, err := updateState(store, func(state *State) error {
		state.Count++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewResponse().AddAttribute("action", "increment"), nil
}

func executeReset(store Store, info MessageInfo, count int32) (*Response, error) {
	_, err := updateState(store, func(state *State) error {
		if info.Sender != state.Owner {
			return ErrUnauthorized
		}
		state.Count = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewResponse().AddAttribute("action", "reset"), nil
}

// Query answers [msg] as JSON. It never writes.
func Query(store ReadStore, msg QueryMsg) ([]byte, error) {
	switch {
	case msg.GetCount != nil:
		resp, err := QueryCount(store)
		if err != nil {
			return nil, err
		}
		return marshalJSON(resp)
	default:
		return nil, fmt.Errorf("%w: empty query message", ErrMalformedMessage)
	}
}

// QueryCount returns the current count.
func QueryCount(store ReadStore) (*CountResponse, error) {
	state, err := LoadState(store)
	if err != nil {
		return nil, err
	}
	return &CountResponse{Count: state.Count}, nil
}

func marshalJSON(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return b, nil
}
