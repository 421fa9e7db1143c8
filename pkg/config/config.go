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

// Package config provides the application configuration, including
// parsing and printing configuration files, command line parameters, and
// environment variables, as well as default values.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/trickstercache/blueprint/pkg/config/defaults"
	"github.com/trickstercache/blueprint/pkg/errors"
	lo "github.com/trickstercache/blueprint/pkg/observability/logging/options"
	mo "github.com/trickstercache/blueprint/pkg/observability/metrics/options"
	to "github.com/trickstercache/blueprint/pkg/observability/tracing/options"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Frontend provides configurations about the engine listener
	Frontend *FrontendConfig `yaml:"frontend,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting Metrics about the application
	Metrics *mo.Options `yaml:"metrics,omitempty"`
	// Tracing provides the distributed tracing configuration
	Tracing *to.Options `yaml:"tracing,omitempty"`

	// Flags holds the command line flags used to load the Config
	Flags *Flags `yaml:"-"`
	// LoaderWarnings holds non-fatal issues found while loading
	LoaderWarnings []string `yaml:"-"`

	configFilePath string
}

// MainConfig is a collection of general configuration values.
type MainConfig struct {
	// InstanceID represents a unique ID for the current instance, when multiple instances on the same host
	InstanceID int `yaml:"instance_id,omitempty"`
	// ServerName is the name reported in log lines; defaults to os.Hostname
	ServerName string `yaml:"server_name,omitempty"`
}

// FrontendConfig is a collection of configurations for the engine listener
type FrontendConfig struct {
	// ListenAddress is IP address for the engine listener
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is TCP Port for the engine listener
	ListenPort int `yaml:"listen_port,omitempty"`
	// ConnectionsLimit indicates how many concurrent connections the engine
	// will handle at any time. 0 is unlimited
	ConnectionsLimit int `yaml:"connections_limit,omitempty"`
	// MaxRequestBytes bounds how many bytes are read for a single request
	MaxRequestBytes int `yaml:"max_request_bytes,omitempty"`
}

// Address returns the host:port the engine binds to
func (fc *FrontendConfig) Address() string {
	return net.JoinHostPort(fc.ListenAddress, strconv.Itoa(fc.ListenPort))
}

// NewConfig returns a Config initialized with default values.
func NewConfig() *Config {
	hn, _ := os.Hostname()
	return &Config{
		Main: &MainConfig{
			ServerName: hn,
		},
		Frontend: &FrontendConfig{
			ListenAddress:    defaults.DefaultListenAddress,
			ListenPort:       defaults.DefaultListenPort,
			ConnectionsLimit: defaults.DefaultConnectionsLimit,
			MaxRequestBytes:  defaults.DefaultMaxRequestBytes,
		},
		Logging:        lo.New(),
		Metrics:        mo.New(),
		Tracing:        to.New(),
		LoaderWarnings: make([]string, 0),
	}
}

// Clone returns an exact copy of the subject *Config
func (c *Config) Clone() *Config {
	nc := &Config{
		configFilePath: c.configFilePath,
	}
	if c.Main != nil {
		m := *c.Main
		nc.Main = &m
	}
	if c.Frontend != nil {
		f := *c.Frontend
		nc.Frontend = &f
	}
	if c.Logging != nil {
		nc.Logging = c.Logging.Clone()
	}
	if c.Metrics != nil {
		nc.Metrics = c.Metrics.Clone()
	}
	if c.Tracing != nil {
		nc.Tracing = c.Tracing.Clone()
	}
	if c.Flags != nil {
		f := *c.Flags
		nc.Flags = &f
	}
	if c.LoaderWarnings != nil {
		nc.LoaderWarnings = append(make([]string, 0, len(c.LoaderWarnings)),
			c.LoaderWarnings...)
	}
	return nc
}

// ConfigFilePath returns the file path from which this configuration is based
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// String returns the YAML representation of the config
func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("error marshaling config: %s", err.Error())
	}
	return string(b)
}

func validPort(p int) bool {
	return p >= 0 && p <= 65535
}

// Validate checks the loaded configuration for values the application
// cannot run with
func (c *Config) Validate() error {
	if c.Frontend == nil || c.Frontend.ListenPort < 1 || !validPort(c.Frontend.ListenPort) {
		var port int
		if c.Frontend != nil {
			port = c.Frontend.ListenPort
		}
		return fmt.Errorf("%w: frontend listen_port %d", errors.ErrInvalidPort, port)
	}
	if c.Frontend.ConnectionsLimit < 0 {
		c.LoaderWarnings = append(c.LoaderWarnings,
			"frontend connections_limit is negative and will be treated as unlimited")
	}
	if c.Metrics != nil && !validPort(c.Metrics.ListenPort) {
		return fmt.Errorf("%w: metrics listen_port %d", errors.ErrInvalidPort,
			c.Metrics.ListenPort)
	}
	if c.Metrics != nil && c.Metrics.ListenPort > 0 &&
		c.Metrics.ListenPort == c.Frontend.ListenPort &&
		c.Metrics.ListenAddress == c.Frontend.ListenAddress {
		return fmt.Errorf("%w: metrics and frontend share port %d",
			errors.ErrInvalidPort, c.Metrics.ListenPort)
	}
	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}
	if c.Tracing != nil {
		if err := c.Tracing.Validate(); err != nil {
			return err
		}
	}
	return nil
}
