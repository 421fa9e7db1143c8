/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"flag"
	"io"

	"github.com/trickstercache/blueprint/pkg/config/defaults"
)

const (
	// Command-line flags
	cfConfig        = "config"
	cfVersion       = "version"
	cfValidate      = "validate-config"
	cfLogLevel      = "log-level"
	cfInstanceID    = "instance-id"
	cfListenAddress = "listen-address"
	cfListenPort    = "listen-port"
	cfMetricsPort   = "metrics-port"
)

// Flags holds the values for whitelisted flags
type Flags struct {
	PrintVersion      bool
	ValidateConfig    bool
	ConfigPath        string
	LogLevel          string
	InstanceID        int
	ListenAddress     string
	ListenPort        int
	MetricsListenPort int

	customPath bool
}

// parseFlags parses the Application Flags into a Flags object
func parseFlags(applicationName string, arguments []string) (*Flags, error) {

	flags := &Flags{}
	flagSet := flag.NewFlagSet(applicationName, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	flagSet.BoolVar(&flags.PrintVersion, cfVersion, false,
		"Prints the version")
	flagSet.BoolVar(&flags.ValidateConfig, cfValidate, false,
		"Validates the config and exits without running the server")
	flagSet.StringVar(&flags.ConfigPath, cfConfig, "",
		"Path to the YAML Config File")
	flagSet.StringVar(&flags.LogLevel, cfLogLevel, "",
		"Level of Logging to use (debug, info, warn, error)")
	flagSet.IntVar(&flags.InstanceID, cfInstanceID, 0,
		"Instance ID is for running multiple processes"+
			" from the same config while logging to their own files")
	flagSet.StringVar(&flags.ListenAddress, cfListenAddress, "",
		"IP address that the engine will listen on")
	flagSet.IntVar(&flags.ListenPort, cfListenPort, 0,
		"Port that the engine will listen on")
	flagSet.IntVar(&flags.MetricsListenPort, cfMetricsPort, 0,
		"Port that the /metrics endpoint will listen on")

	err := flagSet.Parse(arguments)
	if err != nil {
		return flags, err
	}
	if flags.ConfigPath != "" {
		flags.customPath = true
	} else {
		flags.ConfigPath = defaults.DefaultConfigPath
	}
	return flags, nil
}

// loadFlags loads configuration from command line flags.
func (c *Config) loadFlags(flags *Flags) {
	if flags.ListenAddress != "" {
		c.Frontend.ListenAddress = flags.ListenAddress
	}
	if flags.ListenPort > 0 {
		c.Frontend.ListenPort = flags.ListenPort
	}
	if flags.MetricsListenPort > 0 {
		c.Metrics.ListenPort = flags.MetricsListenPort
	}
	if flags.LogLevel != "" {
		c.Logging.LogLevel = flags.LogLevel
	}
	if flags.InstanceID > 0 {
		c.Main.InstanceID = flags.InstanceID
	}
}
