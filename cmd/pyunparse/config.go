// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/pyunparse/printer"
)

// Flags are the command-line settings shared by every subcommand.
type Flags struct {
	ConfigFile string
	Config     Config
	Debug      bool
}

// Config holds printer settings. Zero values select the printer's
// defaults.
type Config struct {
	MaxWidth          int    `yaml:"max_width"`
	Indent            string `yaml:"indent"`
	MinTripleLength   int    `yaml:"min_triple_length"`
	MaxStatementWidth int    `yaml:"max_statement_width"`
}

// LoadConfig reads a YAML config file. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c Config) validate() error {
	switch {
	case c.MaxWidth < 0:
		return fmt.Errorf("max_width must not be negative, got %d", c.MaxWidth)
	case c.MinTripleLength < 0:
		return fmt.Errorf("min_triple_length must not be negative, got %d", c.MinTripleLength)
	case c.MaxStatementWidth < 0:
		return fmt.Errorf("max_statement_width must not be negative, got %d", c.MaxStatementWidth)
	}
	for _, r := range c.Indent {
		if r != ' ' && r != '\t' {
			return fmt.Errorf("indent must be spaces or tabs, got %q", c.Indent)
		}
	}
	return nil
}

// Merge returns c with every setting that is set in over replaced.
func (c Config) Merge(over Config) Config {
	if over.MaxWidth != 0 {
		c.MaxWidth = over.MaxWidth
	}
	if over.Indent != "" {
		c.Indent = over.Indent
	}
	if over.MinTripleLength != 0 {
		c.MinTripleLength = over.MinTripleLength
	}
	if over.MaxStatementWidth != 0 {
		c.MaxStatementWidth = over.MaxStatementWidth
	}
	return c
}

// Options converts c to printer options.
func (c Config) Options(logger *slog.Logger) printer.Options {
	return printer.Options{
		MaxWidth:          c.MaxWidth,
		Indent:            c.Indent,
		MinTripleLength:   c.MinTripleLength,
		MaxStatementWidth: c.MaxStatementWidth,
		Logger:            logger,
	}
}
