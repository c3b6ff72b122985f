// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package harness runs YAML scenarios against an in-memory countervm host and
// records what every call did.
package harness

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/countervm"
)

// TraceEvent records one step and its outcome.
type TraceEvent struct {
	Seq        int                   `json:"seq"`
	Kind       string                `json:"kind"`
	Sender     string                `json:"sender,omitempty"`
	Msg        json.RawMessage       `json:"msg,omitempty"`
	Raw        string                `json:"raw,omitempty"`
	Attributes []countervm.Attribute `json:"attributes,omitempty"`
	Result     json.RawMessage       `json:"result,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true if every expect clause matched.
	Pass   bool
	Trace  []TraceEvent
	Errors []string

	// Contract is the address of the last instance created by the scenario.
	Contract ids.ShortID
}

func (r *Result) addError(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes [s] against a fresh host. Errors returned by contract calls are
// recorded in the trace; only a scenario that cannot be executed at all is
// reported as an error.
func Run(s *Scenario) (*Result, error) {
	host := (&countervm.Factory{}).New(memdb.New())
	defer host.Shutdown()

	result := &Result{Pass: true}
	for i, step := range s.Steps {
		event, err := runStep(host, result, step)
		if err != nil {
			return nil, fmt.Errorf("steps[%d]: %w", i, err)
		}
		event.Seq = i + 1
		result.Trace = append(result.Trace, event)
		check(result, event, step.Expect)
	}
	return result, nil
}

func runStep(host *countervm.Host, result *Result, step Step) (TraceEvent, error) {
	event := TraceEvent{
		Kind:   step.Kind,
		Sender: step.Sender,
		Raw:    step.Raw,
	}
	msg := []byte(step.Raw)
	if step.Msg != nil {
		b, err := json.Marshal(step.Msg)
		if err != nil {
			return event, fmt.Errorf("couldn't encode msg: %w", err)
		}
		msg = b
		event.Msg = b
	}
	sender := countervm.AddressFromName(step.Sender)

	var err error
	switch step.Kind {
	case InstantiateStep:
		var (
			addr ids.ShortID
			resp *countervm.Response
		)
		addr, resp, err = host.Instantiate(sender, step.Label, msg)
		if err == nil {
			result.Contract = addr
			event.Attributes = resp.Attributes
		}
	case ExecuteStep:
		var resp *countervm.Response
		resp, err = host.Execute(sender, result.Contract, msg)
		if err == nil {
			event.Attributes = resp.Attributes
		}
	case QueryStep:
		var res []byte
		res, err = host.Query(result.Contract, msg)
		if err == nil {
			event.Result = res
		}
	default:
		return event, fmt.Errorf("unknown kind %q", step.Kind)
	}
	if err != nil {
		event.Error = countervm.ErrorKind(err)
	}
	return event, nil
}

func check(result *Result, event TraceEvent, expect *Expect) {
	if expect == nil {
		return
	}
	if event.Error != expect.Error {
		result.addError("seq %d: expected error %q, got %q", event.Seq, expect.Error, event.Error)
		return
	}
	if expect.Count == nil {
		return
	}

	value := countervm.CountResponse{}
	if err := json.Unmarshal(event.Result, &value); err != nil {
		result.addError("seq %d: expected count %d, got result %q", event.Seq, *expect.Count, event.Result)
		return
	}
	if value.Count != *expect.Count {
		result.addError("seq %d: expected count %d, got %d", event.Seq, *expect.Count, value.Count)
	}
}

// MarshalTrace renders [trace] as one JSON object per line.
func MarshalTrace(trace []TraceEvent) ([]byte, error) {
	buf := bytes.Buffer{}
	for _, event := range trace {
		b, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
