// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package counterctl implements the command line interface of a countervm
// host.
package counterctl

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/client"
	"github.com/ava-labs/countervm/countervm"
)

const (
	uriKey    = "uri"
	senderKey = "sender"

	envPrefix = "counterctl"

	defaultURI = "http://127.0.0.1:9650/ext/counter"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	URI    string
	Sender ids.ShortID

	// NewClient builds the client the commands talk to.
	NewClient func(uri string) client.Client
}

// Client returns a client for the configured host.
func (o *RootOptions) Client() client.Client {
	return o.NewClient(o.URI)
}

// NewRootCommand creates the root command for the counterctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{NewClient: client.New}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "counterctl",
		Short: "counterctl talks to a countervm host",
		Long:  "Instantiate counter contracts, execute messages against them and query their count.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.URI = v.GetString(uriKey)
			if opts.URI == "" {
				return fmt.Errorf("%s is required", uriKey)
			}
			sender := v.GetString(senderKey)
			if sender == "" {
				return fmt.Errorf("%s is required", senderKey)
			}
			opts.Sender = countervm.ParseAddress(sender)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String(uriKey, defaultURI, "URI of the countervm service")
	cmd.PersistentFlags().String(senderKey, "creator", "address or account name calls are sent from")
	cobra.CheckErr(v.BindPFlags(cmd.PersistentFlags()))

	cmd.AddCommand(NewInstantiateCommand(opts))
	cmd.AddCommand(NewIncrementCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewGetCountCommand(opts))
	cmd.AddCommand(NewDeployCommand(opts))

	return cmd
}

func parseContract(s string) (ids.ShortID, error) {
	if s == "" {
		return ids.ShortEmpty, fmt.Errorf("--contract is required")
	}
	addr, err := ids.ShortFromString(s)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("invalid contract address %q: %w", s, err)
	}
	return addr, nil
}
