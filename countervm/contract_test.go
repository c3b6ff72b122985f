// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	creator = AddressFromName("creator")
	anyone  = AddressFromName("anyone")
)

func newTestStore() Store {
	return NewStore(memdb.New())
}

func instantiateCounter(t *testing.T, store Store, count int32) *Response {
	resp, err := (&Counter{}).Instantiate(store, Env{}, MessageInfo{Sender: creator}, mustJSON(t, InstantiateMsg{Count: count}))
	require.NoError(t, err)
	return resp
}

func queryCount(t *testing.T, store ReadStore) int32 {
	res, err := (&Counter{}).Query(store, Env{}, []byte(`{"get_count":{}}`))
	require.NoError(t, err)
	value := CountResponse{}
	require.NoError(t, json.Unmarshal(res, &value))
	return value.Count
}

func mustJSON(t *testing.T, v interface{}) []byte {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestProperInitialization(t *testing.T) {
	require := require.New(t)
	store := newTestStore()

	resp := instantiateCounter(t, store, 17)
	require.Equal([]Attribute{
		{Key: "method", Value: "instantiate"},
		{Key: "owner", Value: creator.String()},
		{Key: "count", Value: "17"},
	}, resp.Attributes)
	require.Empty(resp.Data)

	require.Equal(int32(17), queryCount(t, store))

	state, err := LoadState(store)
	require.NoError(err)
	require.Equal(creator, state.Owner)

	info, err := GetContractVersion(store)
	require.NoError(err)
	require.Equal(ContractName, info.Contract)
	require.Equal(ContractVersion, info.Version)
}

func TestInstantiateTwice(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	instantiateCounter(t, store, 17)

	_, err := Instantiate(store, MessageInfo{Sender: anyone}, InstantiateMsg{Count: 1})
	require.ErrorIs(err, ErrAlreadyInitialized)

	state, err := LoadState(store)
	require.NoError(err)
	require.Equal(int32(17), state.Count)
	require.Equal(creator, state.Owner)
}

func TestIncrement(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	instantiateCounter(t, store, 17)

	resp, err := (&Counter{}).Execute(store, Env{}, MessageInfo{Sender: anyone}, []byte(`{"increment":{}}`))
	require.NoError(err)
	require.Equal([]Attribute{{Key: "action", Value: "increment"}}, resp.Attributes)

	require.Equal(int32(18), queryCount(t, store))
}

func TestIncrementAnyCaller(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	instantiateCounter(t, store, -3)

	callers := []string{"creator", "anyone", "alice", "bob", "anyone"}
	for _, name := range callers {
		_, err := Execute(store, MessageInfo{Sender: AddressFromName(name)}, ExecuteMsg{Increment: &Increment{}})
		require.NoError(err)
	}
	require.Equal(int32(-3+len(callers)), queryCount(t, store))
}

func TestIncrementWraps(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	instantiateCounter(t, store, math.MaxInt32)

	_, err := Execute(store, MessageInfo{Sender: anyone}, ExecuteMsg{Increment: &Increment{}})
	require.NoError(err)
	require.Equal(int32(math.MinInt32), queryCount(t, store))
}

func TestReset(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	instantiateCounter(t, store, 17)

	// only the original creator can reset the counter
	_, err := (&Counter{}).Execute(store, Env{}, MessageInfo{Sender: anyone}, []byte(`{"reset":{"count":5}}`))
	require.ErrorIs(err, ErrUnauthorized)
	require.Equal(int32(17), queryCount(t, store))

	resp, err := (&Counter{}).Execute(store, Env{}, MessageInfo{Sender: creator}, []byte(`{"reset":{"count":5}}`))
	require.NoError(err)
	require.Equal([]Attribute{{Key: "action", Value: "reset"}}, resp.Attributes)
	require.Equal(int32(5), queryCount(t, store))
}

func TestResetAcceptsAnyCount(t *testing.T) {
	store := newTestStore()
	instantiateCounter(t, store, 0)

	for _, count := range []int32{math.MinInt32, -1, 0, 1, math.MaxInt32} {
		_, err := Execute(store, MessageInfo{Sender: creator}, ExecuteMsg{Reset: &Reset{Count: count}})
		require.NoError(t, err)
		assert.Equal(t, count, queryCount(t, store))
	}
}

func TestUnauthorizedResetLeavesStoreUnmodified(t *testing.T) {
	require := require.New(t)
	db := memdb.New()
	store := NewStore(db)
	instantiateCounter(t, store, 17)

	before, err := db.Get([]byte(ConfigKey))
	require.NoError(err)

	_, err = Execute(store, MessageInfo{Sender: anyone}, ExecuteMsg{Reset: &Reset{Count: 5}})
	require.ErrorIs(err, ErrUnauthorized)

	after, err := db.Get([]byte(ConfigKey))
	require.NoError(err)
	require.Equal(before, after)
}

func TestUninitialized(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	counter := &Counter{}

	_, err := counter.Query(store, Env{}, []byte(`{"get_count":{}}`))
	require.ErrorIs(err, ErrUninitialized)

	_, err = counter.Execute(store, Env{}, MessageInfo{Sender: creator}, []byte(`{"increment":{}}`))
	require.ErrorIs(err, ErrUninitialized)

	_, err = counter.Execute(store, Env{}, MessageInfo{Sender: creator}, []byte(`{"reset":{"count":1}}`))
	require.ErrorIs(err, ErrUninitialized)

	_, err = LoadState(store)
	require.ErrorIs(err, ErrUninitialized)
	_, err = GetContractVersion(store)
	require.ErrorIs(err, ErrUninitialized)
}

func TestQueryIdempotent(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	instantiateCounter(t, store, 42)

	first, err := Query(store, QueryMsg{GetCount: &GetCount{}})
	require.NoError(err)
	for i := 0; i < 5; i++ {
		res, err := Query(store, QueryMsg{GetCount: &GetCount{}})
		require.NoError(err)
		require.Equal(first, res)
	}
	require.JSONEq(`{"count":42}`, string(first))
}

func TestMalformedMessages(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	counter := &Counter{}

	_, err := counter.Instantiate(store, Env{}, MessageInfo{Sender: creator}, []byte(`{}`))
	require.ErrorIs(err, ErrMalformedMessage)
	_, err = LoadState(store)
	require.ErrorIs(err, ErrUninitialized)

	instantiateCounter(t, store, 1)

	_, err = counter.Execute(store, Env{}, MessageInfo{Sender: creator}, []byte(`{"decrement":{}}`))
	require.ErrorIs(err, ErrMalformedMessage)

	_, err = counter.Query(store, Env{}, []byte(`not json`))
	require.ErrorIs(err, ErrMalformedMessage)

	require.Equal(int32(1), queryCount(t, store))
}

func TestCorruptState(t *testing.T) {
	require := require.New(t)
	store := newTestStore()
	require.NoError(store.Set([]byte(ConfigKey), []byte{0xff}))

	_, err := QueryCount(store)
	require.ErrorIs(err, ErrSerialization)

	_, err = Execute(store, MessageInfo{Sender: creator}, ExecuteMsg{Increment: &Increment{}})
	require.ErrorIs(err, ErrSerialization)
}

// Scenario: instantiate(17), increment by anyone, reset by a non-owner fails,
// reset by the owner succeeds.
func TestCounterLifecycle(t *testing.T) {
	require := require.New(t)
	store := newTestStore()

	instantiateCounter(t, store, 17)
	require.Equal(int32(17), queryCount(t, store))

	_, err := Execute(store, MessageInfo{Sender: anyone}, ExecuteMsg{Increment: &Increment{}})
	require.NoError(err)
	require.Equal(int32(18), queryCount(t, store))

	_, err = Execute(store, MessageInfo{Sender: anyone}, ExecuteMsg{Reset: &Reset{Count: 5}})
	require.ErrorIs(err, ErrUnauthorized)
	require.Equal(int32(18), queryCount(t, store))

	_, err = Execute(store, MessageInfo{Sender: creator}, ExecuteMsg{Reset: &Reset{Count: 5}})
	require.NoError(err)
	require.Equal(int32(5), queryCount(t, store))
}
