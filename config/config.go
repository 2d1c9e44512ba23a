// Package config loads CLI defaults from a TOML file.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-version"

	"github.com/reoring/yamlschema"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = "yamlschema.toml"

// Config holds defaults for CLI flags. Empty fields leave the flag default
// in place.
type Config struct {
	YAML      string `toml:"yaml"`
	Dest      string `toml:"dest"`
	Docs      string `toml:"docs"`
	Test      string `toml:"test"`
	Separator string `toml:"separator"`
	Validate  bool   `toml:"validate"`

	// RequiredVersion is a version constraint (e.g. ">= 0.2, < 1.0") the
	// running binary must satisfy.
	RequiredVersion string `toml:"required_version"`
}

// Load reads the config at path. When explicit is false a missing file is
// not an error and yields an empty Config.
func Load(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, &yamlschema.Error{Kind: yamlschema.KindConfig, File: path, Message: "cannot read config", Err: err}
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, &yamlschema.Error{Kind: yamlschema.KindConfig, File: path, Message: "invalid config", Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &yamlschema.Error{Kind: yamlschema.KindConfig, File: path, Message: "unknown config keys: " + strings.Join(keys, ", ")}
	}
	return cfg, nil
}

// CheckVersion verifies current against RequiredVersion. Development builds
// whose version does not parse are accepted.
func (c *Config) CheckVersion(current string) error {
	if c.RequiredVersion == "" {
		return nil
	}
	constraint, err := version.NewConstraint(c.RequiredVersion)
	if err != nil {
		return &yamlschema.Error{Kind: yamlschema.KindConfig, Message: "invalid required_version", Err: err}
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return nil
	}
	if !constraint.Check(v) {
		return yamlschema.Errorf(yamlschema.KindConfig, "yamlschema %s does not satisfy required_version %q", current, c.RequiredVersion)
	}
	return nil
}
