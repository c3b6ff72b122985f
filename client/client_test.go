// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanchego/database/memdb"

	"github.com/ava-labs/countervm/countervm"
)

var (
	creator = countervm.AddressFromName("creator")
	anyone  = countervm.AddressFromName("anyone")
)

func newTestServer(t *testing.T) *httptest.Server {
	host := (&countervm.Factory{}).New(memdb.New())
	handlers, err := host.CreateHandlers()
	require.NoError(t, err)

	server := httptest.NewServer(handlers[""])
	t.Cleanup(server.Close)
	return server
}

func TestClientLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	server := newTestServer(t)
	cli := New(server.URL)

	contract, err := cli.Instantiate(ctx, creator, "client test", 17)
	require.NoError(err)

	count, err := cli.GetCount(ctx, contract)
	require.NoError(err)
	require.Equal(int32(17), count)

	require.NoError(cli.Increment(ctx, anyone, contract))
	count, err = cli.GetCount(ctx, contract)
	require.NoError(err)
	require.Equal(int32(18), count)

	err = cli.Reset(ctx, anyone, contract, 5)
	require.ErrorIs(err, countervm.ErrUnauthorized)
	count, err = cli.GetCount(ctx, contract)
	require.NoError(err)
	require.Equal(int32(18), count)

	require.NoError(cli.Reset(ctx, creator, contract, 5))
	count, err = cli.GetCount(ctx, contract)
	require.NoError(err)
	require.Equal(int32(5), count)

	info, err := cli.ContractInfo(ctx, contract)
	require.NoError(err)
	require.Equal(creator, info.Creator)
	require.Equal("client test", info.Label)
	require.Equal(countervm.ContractVersion, info.Version)
}

func TestClientExecuteAttributes(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	cli := New(newTestServer(t).URL)

	contract, err := cli.Instantiate(ctx, creator, "", 0)
	require.NoError(err)

	attrs, err := cli.Execute(ctx, anyone, contract, countervm.ExecuteMsg{Increment: &countervm.Increment{}})
	require.NoError(err)
	require.Equal([]countervm.Attribute{{Key: "action", Value: "increment"}}, attrs)

	_, err = cli.Execute(ctx, anyone, contract, countervm.ExecuteMsg{})
	require.ErrorIs(err, countervm.ErrMalformedMessage)
}

func TestClientUnknownContract(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	cli := New(newTestServer(t).URL)

	_, err := cli.GetCount(ctx, countervm.ContractAddress(creator, 0))
	require.ErrorIs(err, countervm.ErrUnknownContract)

	err = cli.Increment(ctx, creator, countervm.ContractAddress(creator, 0))
	require.ErrorIs(err, countervm.ErrUnknownContract)
}

func TestContractError(t *testing.T) {
	require := require.New(t)

	err := contractError(&json2.Error{Code: json2.E_SERVER, Message: "unauthorized", Data: countervm.KindUnauthorized})
	require.ErrorIs(err, countervm.ErrUnauthorized)
	require.EqualError(err, "unauthorized")

	err = contractError(fmt.Errorf("request failed: %w", &json2.Error{Code: json2.E_SERVER, Message: "unknown contract", Data: countervm.KindUnknownContract}))
	require.ErrorIs(err, countervm.ErrUnknownContract)

	plain := errors.New("connection refused")
	require.Equal(plain, contractError(plain))
	require.NoError(contractError(nil))
}
