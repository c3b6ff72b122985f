// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/formatting"
)

// Message kinds accepted by StaticService.Encode
const (
	InstantiateKind = "instantiate"
	ExecuteKind     = "execute"
	QueryKind       = "query"
)

// StaticService encodes and decodes contract messages without touching any
// contract instance
type StaticService struct{}

// CreateStaticService ...
func CreateStaticService() *StaticService {
	return &StaticService{}
}

// EncoderArgs are arguments for Encode
type EncoderArgs struct {
	Kind     string              `json:"kind"`
	Data     string              `json:"data"` // JSON message
	Encoding formatting.Encoding `json:"encoding"`
}

// EncoderReply is the reply from Encoder
type EncoderReply struct {
	Bytes    string              `json:"bytes"`
	Encoding formatting.Encoding `json:"encoding"`
}

// Encode validates the JSON message in [args.Data] against its kind and
// returns it encoded
func (ss *StaticService) Encode(_ *http.Request, args *EncoderArgs, reply *EncoderReply) error {
	msg := []byte(args.Data)
	if err := validateMsg(args.Kind, msg); err != nil {
		return contractError(err)
	}

	bytes, err := formatting.EncodeWithChecksum(args.Encoding, msg)
	if err != nil {
		return fmt.Errorf("couldn't encode data as string: %s", err)
	}
	reply.Bytes = bytes
	reply.Encoding = args.Encoding
	return nil
}

// DecoderArgs are arguments for Decode
type DecoderArgs struct {
	Bytes    string              `json:"bytes"`
	Encoding formatting.Encoding `json:"encoding"`
}

// DecoderReply is the reply from Decode
type DecoderReply struct {
	Kind string `json:"kind"`
	Data string `json:"data"` // JSON message
}

// Decode returns the JSON message encoded in [args.Bytes] along with the kind
// of message it is
func (ss *StaticService) Decode(_ *http.Request, args *DecoderArgs, reply *DecoderReply) error {
	msg, err := formatting.Decode(args.Encoding, args.Bytes)
	if err != nil {
		return fmt.Errorf("couldn't decode bytes: %w", err)
	}

	kind, err := msgKind(msg)
	if err != nil {
		return contractError(err)
	}
	reply.Kind = kind
	reply.Data = string(msg)
	return nil
}

// msgKind returns the kind of the first message type [msg] parses as. The
// kinds share no field names, so at most one can match.
func msgKind(msg []byte) (string, error) {
	for _, kind := range []string{InstantiateKind, ExecuteKind, QueryKind} {
		if validateMsg(kind, msg) == nil {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: not an instantiate, execute or query message", ErrMalformedMessage)
}

func validateMsg(kind string, msg []byte) error {
	var err error
	switch kind {
	case InstantiateKind:
		_, err = ParseInstantiateMsg(msg)
	case ExecuteKind:
		_, err = ParseExecuteMsg(msg)
	case QueryKind:
		_, err = ParseQueryMsg(msg)
	default:
		err = fmt.Errorf("%w: unknown message kind %q", ErrMalformedMessage, kind)
	}
	return err
}
