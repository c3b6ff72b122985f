// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"strings"

	log "github.com/inconshreveable/log15"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	versionKey  = "version"
	httpHostKey = "http-host"
	httpPortKey = "http-port"
	logLevelKey = "log-level"

	envPrefix = "countervm"
)

// Config is the configuration of the countervm binary
type Config struct {
	PrintVersion bool
	HTTPHost     string
	HTTPPort     uint16
	LogLevel     log.Lvl
}

// Addr is the address the API server listens on
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func buildFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("countervm", flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints Version and quit")
	fs.String(httpHostKey, "127.0.0.1", "Address of the HTTP server")
	fs.Uint(httpPortKey, 9650, "Port of the HTTP server")
	fs.String(logLevelKey, "info", "The log level. Should be one of {crit, eror, warn, info, dbug}")

	return fs
}

// getViper returns the viper environment for the binary
func getViper(args []string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := pflag.NewFlagSet("countervm", pflag.ContinueOnError)
	fs.AddGoFlagSet(buildFlagSet())
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	return v, nil
}

// BuildConfig parses [args] and the COUNTERVM_* environment
func BuildConfig(args []string) (Config, error) {
	v, err := getViper(args)
	if err != nil {
		return Config{}, err
	}

	port := v.GetUint(httpPortKey)
	if port > 65535 {
		return Config{}, fmt.Errorf("invalid %s %d", httpPortKey, port)
	}
	lvl, err := log.LvlFromString(v.GetString(logLevelKey))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", logLevelKey, err)
	}

	return Config{
		PrintVersion: v.GetBool(versionKey),
		HTTPHost:     v.GetString(httpHostKey),
		HTTPPort:     uint16(port),
		LogLevel:     lvl,
	}, nil
}
