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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the Application Configuration, starting with a default config,
// then overriding with any provided config file, then env vars, and finally flags
func Load(applicationName string, arguments []string) (*Config, *Flags, error) {

	c := NewConfig()
	flags, err := parseFlags(applicationName, arguments) // Parse here to get config file path and version flags
	if err != nil {
		return nil, flags, err
	}
	c.Flags = flags
	if flags.PrintVersion {
		return nil, flags, nil
	}
	if err := c.loadFile(flags); err != nil {
		if flags.customPath {
			// a user-provided path couldn't be loaded. return the error for the application to handle
			return nil, flags, err
		}
		c.LoaderWarnings = append(c.LoaderWarnings,
			fmt.Sprintf("using defaults: %s", err.Error()))
	}

	c.loadEnvVars()
	c.loadFlags(flags) // load parsed flags to override file and envs

	if err := c.Validate(); err != nil {
		return nil, flags, err
	}
	return c, flags, nil
}

// loadFile loads application configuration from a YAML-formatted file.
func (c *Config) loadFile(flags *Flags) error {
	b, err := os.ReadFile(flags.ConfigPath)
	if err != nil {
		return err
	}
	if err := c.loadYAMLConfig(b); err != nil {
		return fmt.Errorf("%s: %w", flags.ConfigPath, err)
	}
	c.configFilePath = flags.ConfigPath
	return nil
}

// loadYAMLConfig decodes b over the current values. Unknown keys are an error.
func (c *Config) loadYAMLConfig(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		// empty file
		return nil
	}
	if err != nil {
		return err
	}
	c.restoreSections()
	return nil
}

// restoreSections replaces any section the file explicitly nulled out
// with its defaults
func (c *Config) restoreSections() {
	d := NewConfig()
	if c.Main == nil {
		c.Main = d.Main
	}
	if c.Frontend == nil {
		c.Frontend = d.Frontend
	}
	if c.Logging == nil {
		c.Logging = d.Logging
	}
	if c.Metrics == nil {
		c.Metrics = d.Metrics
	}
	if c.Tracing == nil {
		c.Tracing = d.Tracing
	}
}
