// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats are the config file formats.
type Formats int32

const (
	TOML Formats = iota
	YAML
)

// FormatOf returns the format of the named file from its extension.
func FormatOf(filename string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("config: %q is not a .toml, .yaml or .yml file", filename)
}

// Expand expands a leading ~ in the path to the home directory.
func Expand(path string) (string, error) {
	return homedir.Expand(path)
}

// Open reads the config from the named file, over the [Defaults],
// so that the file only needs to name the settings it changes.
// The returned config is validated.
func Open(filename string) (*Config, error) {
	fn, err := Expand(filename)
	if err != nil {
		return nil, err
	}
	f, err := FormatOf(fn)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	cf := Defaults()
	if err := Unmarshal(b, f, cf); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := cf.Validate(); err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, filename)
	}
	return cf, nil
}

// Unmarshal decodes the config data in the given format into cf.
// Unknown keys are an error in TOML and YAML alike.
func Unmarshal(b []byte, f Formats, cf *Config) error {
	switch f {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		err := dec.Decode(cf)
		if errors.Is(err, io.EOF) {
			return nil // empty file
		}
		return err
	default:
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(cf)
	}
}

// Marshal encodes the config in the given format.
func Marshal(cf *Config, f Formats) ([]byte, error) {
	switch f {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cf); err != nil {
			return nil, err
		}
		err := enc.Close()
		return buf.Bytes(), err
	default:
		return toml.Marshal(cf)
	}
}

// Save writes the config to the named file, in the format of its
// extension, with the current [Version].
func (cf *Config) Save(filename string) error {
	fn, err := Expand(filename)
	if err != nil {
		return err
	}
	f, err := FormatOf(fn)
	if err != nil {
		return err
	}
	sv := cf.Clone()
	sv.Version = Version
	b, err := Marshal(sv, f)
	if err != nil {
		return fmt.Errorf("config: %s: %w", filename, err)
	}
	return os.WriteFile(fn, b, 0666)
}
