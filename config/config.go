// Package config loads the optional .vksetup.yaml file that overrides the
// compiled-in SDK requirement.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
	"github.com/louiss0/vulkan-sdk-setup/sdk"
)

// DefaultFileName is looked up in the working directory when --config is not given.
const DefaultFileName = ".vksetup.yaml"

const schemaURL = "https://github.com/louiss0/vulkan-sdk-setup/config.schema.json"

//go:embed schema.json
var schemaJSON []byte

// File mirrors the YAML document. Every key is optional.
type File struct {
	RequiredVersion string `yaml:"required_version"`
	EnvVar          string `yaml:"env_var"`
	InstallerURL    string `yaml:"installer_url"`
	InstallerPath   string `yaml:"installer_path"`
}

// Requirement converts the file into a partial sdk.Requirement for Merge.
func (f File) Requirement() sdk.Requirement {
	return sdk.Requirement{
		Version:              f.RequiredVersion,
		EnvVar:               f.EnvVar,
		InstallerURLTemplate: f.InstallerURL,
		InstallerPath:        f.InstallerPath,
	}
}

// schema compiles the embedded schema on first use.
var schema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("config schema: %w", err)
	}
	return compiled, nil
})

// Parse decodes and validates a YAML document. An empty document is valid.
func Parse(data []byte) (File, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, fmt.Errorf("%w: %w", custom_errors.ErrInvalidConfig, err)
	}
	if raw == nil {
		return File{}, nil
	}

	// Round-trip through JSON so the validator sees the types it expects.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return File{}, fmt.Errorf("%w: %w", custom_errors.ErrInvalidConfig, err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return File{}, fmt.Errorf("%w: %w", custom_errors.ErrInvalidConfig, err)
	}

	compiled, err := schema()
	if err != nil {
		return File{}, err
	}
	if err := compiled.Validate(instance); err != nil {
		return File{}, fmt.Errorf("%w: %w", custom_errors.ErrInvalidConfig, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("%w: %w", custom_errors.ErrInvalidConfig, err)
	}
	return file, nil
}

// Load reads and parses the file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}

	file, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// LoadDefault loads DefaultFileName from dir. A missing file is not an
// error; found tells the caller whether anything was read.
func LoadDefault(dir string) (file File, found bool, err error) {
	path := filepath.Join(dir, DefaultFileName)

	file, err = Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return File{}, false, nil
	}
	if err != nil {
		return File{}, false, err
	}
	return file, true, nil
}
