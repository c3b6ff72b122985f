// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes [s], fails the test if any expectation did not hold
// and compares the trace against testdata/golden/{s.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./harness -update
func RunWithGolden(t *testing.T, s *Scenario) *Result {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		t.Fatalf("failed to run scenario %s: %s", s.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", s.Name, msg)
	}

	trace, err := MarshalTrace(result.Trace)
	if err != nil {
		t.Fatalf("failed to marshal trace of %s: %s", s.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, trace)
	return result
}
