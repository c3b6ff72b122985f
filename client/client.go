// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/countervm/countervm"
)

// Client defines countervm client operations.
type Client interface {
	// Instantiate creates a counter starting at [count] and returns its address
	Instantiate(ctx context.Context, sender ids.ShortID, label string, count int32) (ids.ShortID, error)

	// Execute sends [msg] to [contract] and returns the reported attributes
	Execute(ctx context.Context, sender, contract ids.ShortID, msg countervm.ExecuteMsg) ([]countervm.Attribute, error)

	// Increment adds one to the counter at [contract]
	Increment(ctx context.Context, sender, contract ids.ShortID) error

	// Reset sets the counter at [contract] to [count]. Only its owner may do so.
	Reset(ctx context.Context, sender, contract ids.ShortID, count int32) error

	// GetCount fetches the current count of [contract]
	GetCount(ctx context.Context, contract ids.ShortID) (int32, error)

	// ContractInfo describes [contract]
	ContractInfo(ctx context.Context, contract ids.ShortID) (*countervm.ContractInfoReply, error)
}

// New creates a new client object for the service served at [uri].
func New(uri string) Client {
	return &client{
		req:      rpc.NewEndpointRequester(uri, "", countervm.ServiceName),
		encoding: formatting.Hex,
	}
}

type client struct {
	req      rpc.EndpointRequester
	encoding formatting.Encoding
}

func (cli *client) Instantiate(ctx context.Context, sender ids.ShortID, label string, count int32) (ids.ShortID, error) {
	msg, err := cli.encode(countervm.InstantiateMsg{Count: count})
	if err != nil {
		return ids.ShortEmpty, err
	}

	resp := new(countervm.InstantiateReply)
	err = contractError(cli.req.SendRequest(ctx,
		"instantiate",
		&countervm.InstantiateArgs{
			Sender:   sender,
			Label:    label,
			Msg:      msg,
			Encoding: cli.encoding,
		},
		resp,
	))
	if err != nil {
		return ids.ShortEmpty, err
	}
	return resp.Contract, nil
}

func (cli *client) Execute(ctx context.Context, sender, contract ids.ShortID, executeMsg countervm.ExecuteMsg) ([]countervm.Attribute, error) {
	msg, err := cli.encode(executeMsg)
	if err != nil {
		return nil, err
	}

	resp := new(countervm.ExecuteReply)
	err = contractError(cli.req.SendRequest(ctx,
		"execute",
		&countervm.ExecuteArgs{
			Sender:   sender,
			Contract: contract,
			Msg:      msg,
			Encoding: cli.encoding,
		},
		resp,
	))
	if err != nil {
		return nil, err
	}
	return resp.Attributes, nil
}

func (cli *client) Increment(ctx context.Context, sender, contract ids.ShortID) error {
	_, err := cli.Execute(ctx, sender, contract, countervm.ExecuteMsg{Increment: &countervm.Increment{}})
	return err
}

func (cli *client) Reset(ctx context.Context, sender, contract ids.ShortID, count int32) error {
	_, err := cli.Execute(ctx, sender, contract, countervm.ExecuteMsg{Reset: &countervm.Reset{Count: count}})
	return err
}

func (cli *client) GetCount(ctx context.Context, contract ids.ShortID) (int32, error) {
	msg, err := cli.encode(countervm.QueryMsg{GetCount: &countervm.GetCount{}})
	if err != nil {
		return 0, err
	}

	resp := new(countervm.QueryReply)
	err = contractError(cli.req.SendRequest(ctx,
		"query",
		&countervm.QueryArgs{
			Contract: contract,
			Msg:      msg,
			Encoding: cli.encoding,
		},
		resp,
	))
	if err != nil {
		return 0, err
	}

	result, err := formatting.Decode(resp.Encoding, resp.Data)
	if err != nil {
		return 0, err
	}
	count := countervm.CountResponse{}
	if err := json.Unmarshal(result, &count); err != nil {
		return 0, fmt.Errorf("couldn't parse query result: %w", err)
	}
	return count.Count, nil
}

func (cli *client) ContractInfo(ctx context.Context, contract ids.ShortID) (*countervm.ContractInfoReply, error) {
	resp := new(countervm.ContractInfoReply)
	return resp, contractError(cli.req.SendRequest(ctx,
		"contractInfo",
		&countervm.ContractInfoArgs{Contract: contract},
		resp,
	))
}

func (cli *client) encode(msg interface{}) (string, error) {
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return formatting.EncodeWithChecksum(cli.encoding, msgBytes)
}

// contractError rebuilds the contract error carried in the data of a json2
// error, so errors.Is matches the host's sentinels.
func contractError(err error) error {
	var jsonErr *json2.Error
	if !errors.As(err, &jsonErr) {
		return err
	}
	if kind, ok := jsonErr.Data.(string); ok {
		return countervm.ErrorFromKind(kind, jsonErr.Message)
	}
	return err
}
