// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUninitialized      = errors.New("contract state not found")
	ErrSerialization      = errors.New("serialization error")
	ErrMalformedMessage   = errors.New("malformed message")
	ErrAlreadyInitialized = errors.New("contract already instantiated")
	ErrUnknownContract    = errors.New("unknown contract")
)

// Error kinds are the tags carried with a failed call across the RPC boundary.
const (
	KindUnauthorized       = "unauthorized"
	KindUninitialized      = "uninitialized"
	KindSerialization      = "serialization"
	KindMalformedMessage   = "malformed_message"
	KindAlreadyInitialized = "already_initialized"
	KindUnknownContract    = "unknown_contract"
	KindInternal           = "internal"
)

var kinds = []struct {
	kind string
	err  error
}{
	{KindUnauthorized, ErrUnauthorized},
	{KindUninitialized, ErrUninitialized},
	{KindSerialization, ErrSerialization},
	{KindMalformedMessage, ErrMalformedMessage},
	{KindAlreadyInitialized, ErrAlreadyInitialized},
	{KindUnknownContract, ErrUnknownContract},
}

// ErrorKind returns the tag of [err]. Errors outside the contract's taxonomy
// are reported as KindInternal.
func ErrorKind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// ErrorFromKind rebuilds an error received from a remote host so that
// errors.Is matches the sentinel named by [kind].
func ErrorFromKind(kind, msg string) error {
	for _, k := range kinds {
		if k.kind == kind {
			return &remoteError{kind: k.err, msg: msg}
		}
	}
	return errors.New(msg)
}

type remoteError struct {
	kind error
	msg  string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.kind }
