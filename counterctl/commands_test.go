// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counterctl

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanchego/database/memdb"

	"github.com/ava-labs/countervm/countervm"
)

func newTestServer(t *testing.T) *httptest.Server {
	host := (&countervm.Factory{}).New(memdb.New())
	handlers, err := host.CreateHandlers()
	require.NoError(t, err)

	server := httptest.NewServer(handlers[""])
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, uri string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--uri", uri))
	err := cmd.Execute()
	return buf.String(), err
}

func TestCounterLifecycle(t *testing.T) {
	require := require.New(t)
	uri := newTestServer(t).URL

	out, err := run(t, uri, "instantiate", "--sender", "creator", "--count", "17", "--label", "cli")
	require.NoError(err)
	contract := strings.TrimSpace(out)
	require.Equal(countervm.ContractAddress(countervm.AddressFromName("creator"), 0).String(), contract)

	out, err = run(t, uri, "get-count", "--contract", contract)
	require.NoError(err)
	require.Equal("17\n", out)

	out, err = run(t, uri, "increment", "--sender", "anyone", "--contract", contract)
	require.NoError(err)
	require.Equal("action=increment\n", out)

	_, err = run(t, uri, "reset", "--sender", "anyone", "--contract", contract, "--count", "5")
	require.ErrorIs(err, countervm.ErrUnauthorized)

	out, err = run(t, uri, "get-count", "--contract", contract)
	require.NoError(err)
	require.Equal("18\n", out)

	out, err = run(t, uri, "reset", "--sender", "creator", "--contract", contract, "--count", "5")
	require.NoError(err)
	require.Equal("action=reset\n", out)

	out, err = run(t, uri, "get-count", "--contract", contract)
	require.NoError(err)
	require.Equal("5\n", out)
}

func TestDeploy(t *testing.T) {
	out, err := run(t, newTestServer(t).URL, "deploy")
	require.NoError(t, err)
	assert.Contains(t, out, "instantiated ")
	assert.Contains(t, out, "count: 1\n")
}

func TestSenderFromEnv(t *testing.T) {
	require := require.New(t)
	uri := newTestServer(t).URL
	t.Setenv("COUNTERCTL_SENDER", "alice")

	out, err := run(t, uri, "instantiate", "--count", "1")
	require.NoError(err)
	require.Equal(countervm.ContractAddress(countervm.AddressFromName("alice"), 0).String(), strings.TrimSpace(out))
}

func TestContractFlag(t *testing.T) {
	uri := newTestServer(t).URL

	_, err := run(t, uri, "get-count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--contract is required")

	_, err = run(t, uri, "increment", "--contract", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid contract address")

	_, err = run(t, uri, "get-count", "--contract", countervm.ContractAddress(countervm.AddressFromName("creator"), 0).String())
	require.ErrorIs(t, err, countervm.ErrUnknownContract)
}
