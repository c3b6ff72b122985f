// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package countervm

import (
	"net/http"

	"github.com/gorilla/rpc/v2"

	cjson "github.com/ava-labs/avalanchego/utils/json"
)

const (
	// ServiceName is the JSON-RPC service name methods are called under,
	// e.g. "counter.instantiate"
	ServiceName       = "counter"
	StaticServiceName = "counterstatic"

	StaticEndpoint = "/static"
)

// CreateHandlers returns a map where:
// Keys: The path extension for this host's API
// Values: The handler for the API
func (h *Host) CreateHandlers() (map[string]http.Handler, error) {
	handler, err := newHandler(ServiceName, &Service{host: h})
	if err != nil {
		return nil, err
	}
	staticHandler, err := newHandler(StaticServiceName, CreateStaticService())
	if err != nil {
		return nil, err
	}
	return map[string]http.Handler{
		"":             handler,
		StaticEndpoint: staticHandler,
	}, nil
}

func newHandler(name string, service interface{}) (http.Handler, error) {
	server := rpc.NewServer()
	codec := cjson.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(service, name)
}
