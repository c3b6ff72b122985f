// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step kinds
const (
	InstantiateStep = "instantiate"
	ExecuteStep     = "execute"
	QueryStep       = "query"
)

// Scenario is a sequence of calls against a single counter instance.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	Steps []Step `yaml:"steps"`
}

// Step is a single call. Exactly one of Msg and Raw is set: Msg is sent as
// JSON, Raw is sent verbatim.
type Step struct {
	Kind   string      `yaml:"kind"`
	Sender string      `yaml:"sender,omitempty"`
	Label  string      `yaml:"label,omitempty"`
	Msg    interface{} `yaml:"msg,omitempty"`
	Raw    string      `yaml:"raw,omitempty"`
	Expect *Expect     `yaml:"expect,omitempty"`
}

// Expect is the outcome a step must produce. An empty Error means the step
// must succeed.
type Expect struct {
	Error string `yaml:"error,omitempty"`
	Count *int32 `yaml:"count,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses a scenario from YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		switch step.Kind {
		case InstantiateStep, ExecuteStep:
			if step.Sender == "" {
				return fmt.Errorf("steps[%d]: sender is required for %s", i, step.Kind)
			}
		case QueryStep:
			if step.Sender != "" {
				return fmt.Errorf("steps[%d]: queries have no sender", i)
			}
		default:
			return fmt.Errorf("steps[%d]: unknown kind %q", i, step.Kind)
		}

		if (step.Msg == nil) == (step.Raw == "") {
			return fmt.Errorf("steps[%d]: exactly one of msg and raw is required", i)
		}
		if step.Label != "" && step.Kind != InstantiateStep {
			return fmt.Errorf("steps[%d]: label is only valid for %s", i, InstantiateStep)
		}
	}
	return nil
}
