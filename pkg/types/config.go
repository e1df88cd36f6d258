// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LinkConfig holds settings for link derivation.
type LinkConfig struct {
	// PrioritizeURL makes a well-formed URL win over an explicit DOI.
	// When false the DOI resolver link is preferred and the URL is only
	// a fallback.
	PrioritizeURL bool `json:"prioritize_url" yaml:"prioritize_url"`
}

// LoaderConfig holds settings for table loading.
type LoaderConfig struct {
	LinkConfig `yaml:",inline"`

	// KeyColumn overrides the unique-identifier column name. Empty means
	// the default aliases ("Bib Key", "BibKey", "Key") are tried.
	KeyColumn string `json:"key_column,omitempty" yaml:"key_column,omitempty"`
}

// StoreConfig holds settings for the session store.
type StoreConfig struct {
	// DataDir is the directory holding the SQLite database and session
	// descriptors (default ".paper-tracker").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// TrackerConfig groups all stage configurations.
type TrackerConfig struct {
	Loader LoaderConfig `json:"loader" yaml:"loader"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
