// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
)

// Service is the API service for a Host
type Service struct{ host *Host }

// InstantiateArgs are the arguments to Instantiate
type InstantiateArgs struct {
	Sender   ids.ShortID         `json:"sender"`
	Label    string              `json:"label"`
	Msg      string              `json:"msg"` // encoded InstantiateMsg
	Encoding formatting.Encoding `json:"encoding"`
}

// InstantiateReply is the reply from Instantiate
type InstantiateReply struct {
	Contract   ids.ShortID `json:"contract"`
	Attributes []Attribute `json:"attributes"`
}

// Instantiate creates a new contract instance
func (s *Service) Instantiate(_ *http.Request, args *InstantiateArgs, reply *InstantiateReply) error {
	msg, err := formatting.Decode(args.Encoding, args.Msg)
	if err != nil {
		return fmt.Errorf("couldn't decode msg: %w", err)
	}

	addr, resp, err := s.host.Instantiate(args.Sender, args.Label, msg)
	if err != nil {
		return contractError(err)
	}
	reply.Contract = addr
	reply.Attributes = resp.Attributes
	return nil
}

// ExecuteArgs are the arguments to Execute
type ExecuteArgs struct {
	Sender   ids.ShortID         `json:"sender"`
	Contract ids.ShortID         `json:"contract"`
	Msg      string              `json:"msg"` // encoded ExecuteMsg
	Encoding formatting.Encoding `json:"encoding"`
}

// ExecuteReply is the reply from Execute
type ExecuteReply struct {
	Attributes []Attribute         `json:"attributes"`
	Data       string              `json:"data"`
	Encoding   formatting.Encoding `json:"encoding"`
}

// Execute runs a state-mutating message against a contract
func (s *Service) Execute(_ *http.Request, args *ExecuteArgs, reply *ExecuteReply) error {
	msg, err := formatting.Decode(args.Encoding, args.Msg)
	if err != nil {
		return fmt.Errorf("couldn't decode msg: %w", err)
	}

	resp, err := s.host.Execute(args.Sender, args.Contract, msg)
	if err != nil {
		return contractError(err)
	}
	reply.Attributes = resp.Attributes
	reply.Data, err = formatting.EncodeWithChecksum(args.Encoding, resp.Data)
	reply.Encoding = args.Encoding
	return err
}

// QueryArgs are the arguments to Query
type QueryArgs struct {
	Contract ids.ShortID         `json:"contract"`
	Msg      string              `json:"msg"` // encoded QueryMsg
	Encoding formatting.Encoding `json:"encoding"`
}

// QueryReply is the reply from Query
type QueryReply struct {
	Data     string              `json:"data"` // encoded JSON result
	Encoding formatting.Encoding `json:"encoding"`
}

// Query runs a read-only message against a contract
func (s *Service) Query(_ *http.Request, args *QueryArgs, reply *QueryReply) error {
	msg, err := formatting.Decode(args.Encoding, args.Msg)
	if err != nil {
		return fmt.Errorf("couldn't decode msg: %w", err)
	}

	result, err := s.host.Query(args.Contract, msg)
	if err != nil {
		return contractError(err)
	}
	reply.Data, err = formatting.EncodeWithChecksum(args.Encoding, result)
	reply.Encoding = args.Encoding
	return err
}

// ContractInfoArgs are the arguments to ContractInfo
type ContractInfoArgs struct {
	Contract ids.ShortID `json:"contract"`
}

// ContractInfoReply is the reply from ContractInfo
type ContractInfoReply struct {
	Contract ids.ShortID `json:"contract"`
	Creator  ids.ShortID `json:"creator"`
	Label    string      `json:"label"`
	CodeName string      `json:"codeName"`
	Name     string      `json:"name"`
	Version  string      `json:"version"`
}

// ContractInfo describes a contract instance
func (s *Service) ContractInfo(_ *http.Request, args *ContractInfoArgs, reply *ContractInfoReply) error {
	inst, err := s.host.Instance(args.Contract)
	if err != nil {
		return contractError(err)
	}
	info, err := s.host.ContractInfo(args.Contract)
	if err != nil {
		return contractError(err)
	}

	reply.Contract = inst.Address
	reply.Creator = inst.Creator
	reply.Label = inst.Label
	reply.CodeName = inst.CodeName
	reply.Name = info.Contract
	reply.Version = info.Version
	return nil
}

// contractError carries the kind of [err] in the error data so clients can
// tell contract failures apart.
func contractError(err error) error {
	return &json2.Error{
		Code:    json2.E_SERVER,
		Message: err.Error(),
		Data:    ErrorKind(err),
	}
}
