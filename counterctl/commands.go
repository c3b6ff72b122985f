// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package counterctl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/countervm"
)

// NewInstantiateCommand creates the instantiate command.
func NewInstantiateCommand(opts *RootOptions) *cobra.Command {
	var (
		count int32
		label string
	)

	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Instantiate a new counter owned by the sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contract, err := opts.Client().Instantiate(cmd.Context(), opts.Sender, label, count)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), contract)
			return nil
		},
	}

	cmd.Flags().Int32Var(&count, "count", 0, "initial count")
	cmd.Flags().StringVar(&label, "label", "", "human readable label of the instance")

	return cmd
}

// NewIncrementCommand creates the increment command.
func NewIncrementCommand(opts *RootOptions) *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "increment",
		Short: "Add one to a counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseContract(contract)
			if err != nil {
				return err
			}
			attrs, err := opts.Client().Execute(cmd.Context(), opts.Sender, addr, countervm.ExecuteMsg{Increment: &countervm.Increment{}})
			if err != nil {
				return err
			}
			printAttributes(cmd, attrs)
			return nil
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "address of the counter")

	return cmd
}

// NewResetCommand creates the reset command.
func NewResetCommand(opts *RootOptions) *cobra.Command {
	var (
		contract string
		count    int32
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Set a counter to a new value. Only its owner may do so.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseContract(contract)
			if err != nil {
				return err
			}
			attrs, err := opts.Client().Execute(cmd.Context(), opts.Sender, addr, countervm.ExecuteMsg{Reset: &countervm.Reset{Count: count}})
			if err != nil {
				return err
			}
			printAttributes(cmd, attrs)
			return nil
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "address of the counter")
	cmd.Flags().Int32Var(&count, "count", 0, "new count")

	return cmd
}

// NewGetCountCommand creates the get-count command.
func NewGetCountCommand(opts *RootOptions) *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "get-count",
		Short: "Print the current count of a counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseContract(contract)
			if err != nil {
				return err
			}
			count, err := opts.Client().GetCount(cmd.Context(), addr)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "address of the counter")

	return cmd
}

// NewDeployCommand creates the deploy command. It instantiates a counter at
// zero, increments it once and checks the host reports a count of one.
func NewDeployCommand(opts *RootOptions) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Instantiate a counter and smoke test it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deploy(cmd.Context(), cmd, opts, label)
		},
	}

	cmd.Flags().StringVar(&label, "label", "counter", "human readable label of the instance")

	return cmd
}

func deploy(ctx context.Context, cmd *cobra.Command, opts *RootOptions, label string) error {
	cli := opts.Client()
	out := cmd.OutOrStdout()

	contract, err := cli.Instantiate(ctx, opts.Sender, label, 0)
	if err != nil {
		return fmt.Errorf("failed to instantiate: %w", err)
	}
	fmt.Fprintf(out, "instantiated %s\n", contract)

	if err := cli.Increment(ctx, opts.Sender, contract); err != nil {
		return fmt.Errorf("failed to increment %s: %w", contract, err)
	}

	count, err := cli.GetCount(ctx, contract)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", contract, err)
	}
	if count != 1 {
		return fmt.Errorf("unexpected count %d after one increment of %s", count, contract)
	}
	fmt.Fprintf(out, "count: %d\n", count)
	return nil
}

func printAttributes(cmd *cobra.Command, attrs []countervm.Attribute) {
	for _, attr := range attrs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", attr.Key, attr.Value)
	}
}
