// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// SessionFile is the on-disk descriptor for a tracking session: where the
// table came from, how links were derived, and a progress summary at the
// time of writing. It is informational; the SQLite store holds the
// authoritative state.
type SessionFile struct {
	Name      string                 `yaml:"name"`
	Source    string                 `yaml:"source"`
	UserID    string                 `yaml:"user_id,omitempty"`
	Config    types.LoaderConfig     `yaml:"config"`
	Snapshot  types.ProgressSnapshot `yaml:"snapshot"`
	Timestamp time.Time              `yaml:"timestamp"`
}

// WriteSessionFile saves a session descriptor to a YAML file.
func WriteSessionFile(path string, sf SessionFile) error {
	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling session file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSessionFile loads a previously written session descriptor.
func ReadSessionFile(path string) (*SessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	var sf SessionFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing session file: %w", err)
	}
	return &sf, nil
}
