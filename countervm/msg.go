// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// InstantiateMsg creates the counter with an initial value.
type InstantiateMsg struct {
	Count int32 `json:"count"`
}

// ExecuteMsg is a tagged union: exactly one field must be set.
type ExecuteMsg struct {
	Increment *Increment `json:"increment,omitempty"`
	Reset     *Reset     `json:"reset,omitempty"`
}

type Increment struct{}

type Reset struct {
	Count int32 `json:"count"`
}

// QueryMsg is a tagged union: exactly one field must be set.
type QueryMsg struct {
	GetCount *GetCount `json:"get_count,omitempty"`
}

type GetCount struct{}

// CountResponse is the reply to GetCount.
type CountResponse struct {
	Count int32 `json:"count"`
}

// Kind returns the wire tag of the variant carried by [m].
func (m ExecuteMsg) Kind() string {
	switch {
	case m.Increment != nil:
		return "increment"
	case m.Reset != nil:
		return "reset"
	default:
		return ""
	}
}

// Kind returns the wire tag of the variant carried by [m].
func (m QueryMsg) Kind() string {
	if m.GetCount != nil {
		return "get_count"
	}
	return ""
}

// ParseInstantiateMsg decodes [data], rejecting unknown and missing fields.
func ParseInstantiateMsg(data []byte) (InstantiateMsg, error) {
	var raw struct {
		Count *int32 `json:"count"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return InstantiateMsg{}, err
	}
	if raw.Count == nil {
		return InstantiateMsg{}, fmt.Errorf("%w: missing field count", ErrMalformedMessage)
	}
	return InstantiateMsg{Count: *raw.Count}, nil
}

// ParseExecuteMsg decodes [data] into an ExecuteMsg carrying exactly one variant.
func ParseExecuteMsg(data []byte) (ExecuteMsg, error) {
	var raw struct {
		Increment *Increment `json:"increment"`
		Reset     *struct {
			Count *int32 `json:"count"`
		} `json:"reset"`
	}
	if err := decodeStrict(data, &raw); err != nil {
		return ExecuteMsg{}, err
	}

	var msg ExecuteMsg
	set := 0
	if raw.Increment != nil {
		msg.Increment = raw.Increment
		set++
	}
	if raw.Reset != nil {
		if raw.Reset.Count == nil {
			return ExecuteMsg{}, fmt.Errorf("%w: reset: missing field count", ErrMalformedMessage)
		}
		msg.Reset = &Reset{Count: *raw.Reset.Count}
		set++
	}
	if set != 1 {
		return ExecuteMsg{}, fmt.Errorf("%w: expected exactly one variant, found %d", ErrMalformedMessage, set)
	}
	return msg, nil
}

// ParseQueryMsg decodes [data] into a QueryMsg carrying exactly one variant.
func ParseQueryMsg(data []byte) (QueryMsg, error) {
	var msg QueryMsg
	if err := decodeStrict(data, &msg); err != nil {
		return QueryMsg{}, err
	}
	if msg.GetCount == nil {
		return QueryMsg{}, fmt.Errorf("%w: expected exactly one variant, found 0", ErrMalformedMessage)
	}
	return msg, nil
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after message", ErrMalformedMessage)
	}
	return nil
}
