package secretshare

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the front-end defaults. The core engine takes everything
// explicitly; only the CLI and HTTP layers consult this.
type Settings struct {
	// Parts and Threshold are the default n and k for split operations
	// that do not specify them.
	Parts     int `yaml:"parts"`
	Threshold int `yaml:"threshold"`

	// Listen is the HTTP server address.
	Listen string `yaml:"listen"`

	// SES configures share distribution by email.
	SES struct {
		Region string `yaml:"region"`
		Sender string `yaml:"sender"`
	} `yaml:"ses"`
}

// DefaultSettings returns the built-in defaults: 5 parts, threshold 3,
// listening on :8080.
func DefaultSettings() *Settings {
	s := &Settings{
		Parts:     5,
		Threshold: 3,
		Listen:    ":8080",
	}
	return s
}

// LoadSettings reads the YAML settings file and applies environment
// overrides. The file is looked up at SECRETSHARE_CONFIG, falling back to
// config.yaml in the keeper directory; a missing file just yields the
// defaults.
func LoadSettings() (*Settings, error) {
	s := DefaultSettings()

	path := os.Getenv("SECRETSHARE_CONFIG")
	if path == "" {
		dir, err := shareDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if addr := os.Getenv("SECRETSHARE_ADDR"); addr != "" {
		s.Listen = addr
	}
	if region := os.Getenv("SECRETSHARE_SES_REGION"); region != "" {
		s.SES.Region = region
	}
	if sender := os.Getenv("SECRETSHARE_SES_SENDER"); sender != "" {
		s.SES.Sender = sender
	}

	if s.Parts < 2 || s.Threshold < 2 || s.Threshold > s.Parts {
		return nil, fmt.Errorf("%w: settings parts=%d threshold=%d", ErrInvalidParameters, s.Parts, s.Threshold)
	}
	return s, nil
}
