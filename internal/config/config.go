// Package config loads the optional YAML file whose settings (log level,
// log format, timeout) fill in CLI fields still at their flag defaults
// after kong has parsed the command line, a simplified form of the way
// ardnew-aenv's cli package layers a config file underneath its flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

type Config struct {
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Load reads and parses path. A missing file is not an error — it just
// means no overrides are applied — but a malformed one is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &c, nil
}
