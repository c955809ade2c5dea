package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config file names, probed in order in every directory from the scan root
// upward.
var fileNames = []string{"aztec-lint.toml", "noir-lint.toml"}

type DomainSeparation struct {
	NullifierRequires  []string `toml:"nullifier_requires"`
	CommitmentRequires []string `toml:"commitment_requires"`
}

// AztecConfig tunes the pattern scanners and the model builder. Every option
// is enumerated here; there is no open-ended reflection.
type AztecConfig struct {
	ContractAttribute string           `toml:"contract_attribute"`
	StorageAttribute  string           `toml:"storage_attribute"`
	ExternalAttribute string           `toml:"external_attribute"`
	ImportsPrefixes   []string         `toml:"imports_prefixes"`
	EnqueueFn         string           `toml:"enqueue_fn"`
	NoteGetterFns     []string         `toml:"note_getter_fns"`
	NullifierFns      []string         `toml:"nullifier_fns"`
	DomainSeparation  DomainSeparation `toml:"domain_separation"`
}

type FilesConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type Profile struct {
	Extends string            `toml:"extends"`
	Ruleset []string          `toml:"ruleset"`
	Levels  map[string]string `toml:"levels"`
}

type Config struct {
	Files    FilesConfig        `toml:"files"`
	Aztec    AztecConfig        `toml:"aztec"`
	Profiles map[string]Profile `toml:"profile"`
}

// IOError reports an unreadable config file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("Config.IO: %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a malformed config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("Config.Parse: %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// DefaultAztec returns the AztecConfig with all documented defaults filled in.
func DefaultAztec() AztecConfig {
	return AztecConfig{
		ContractAttribute: "aztec",
		StorageAttribute:  "storage",
		ExternalAttribute: "external",
		ImportsPrefixes:   []string{"aztec"},
		EnqueueFn:         "enqueue",
		NoteGetterFns:     []string{"get_notes", "get_note", "view_notes"},
		NullifierFns:      []string{"emit_nullifier", "nullify"},
		DomainSeparation: DomainSeparation{
			NullifierRequires:  []string{"contract_address", "note_hash"},
			CommitmentRequires: []string{"storage_slot"},
		},
	}
}

// Default returns the configuration used when no file is found on disk.
func Default() Config {
	return Config{
		Files: FilesConfig{Include: []string{"**/*.nr"}},
		Aztec: DefaultAztec(),
	}
}

// Load searches upward from startDir for aztec-lint.toml (fallback
// noir-lint.toml), decodes the first hit and returns it along with the path
// it was loaded from. When no file exists the defaults are returned with an
// empty path and nil error.
func Load(startDir string) (Config, string, error) {
	dir := startDir
	for {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return loadFile(candidate)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Default(), "", nil
}

func loadFile(path string) (Config, string, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, path, &IOError{Path: path, Err: err}
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, path, &ParseError{Path: path, Err: err}
	}
	applyDefaults(&cfg)
	return cfg, path, nil
}

// applyDefaults backfills options the file left unset. Lists deliberately
// replace rather than merge: a config that names note getters owns the set.
func applyDefaults(cfg *Config) {
	def := DefaultAztec()
	a := &cfg.Aztec
	if a.ContractAttribute == "" {
		a.ContractAttribute = def.ContractAttribute
	}
	if a.StorageAttribute == "" {
		a.StorageAttribute = def.StorageAttribute
	}
	if a.ExternalAttribute == "" {
		a.ExternalAttribute = def.ExternalAttribute
	}
	if len(a.ImportsPrefixes) == 0 {
		a.ImportsPrefixes = def.ImportsPrefixes
	}
	if a.EnqueueFn == "" {
		a.EnqueueFn = def.EnqueueFn
	}
	if len(a.NoteGetterFns) == 0 {
		a.NoteGetterFns = def.NoteGetterFns
	}
	if len(a.NullifierFns) == 0 {
		a.NullifierFns = def.NullifierFns
	}
	if len(a.DomainSeparation.NullifierRequires) == 0 {
		a.DomainSeparation.NullifierRequires = def.DomainSeparation.NullifierRequires
	}
	if len(a.DomainSeparation.CommitmentRequires) == 0 {
		a.DomainSeparation.CommitmentRequires = def.DomainSeparation.CommitmentRequires
	}
	if len(cfg.Files.Include) == 0 {
		cfg.Files.Include = []string{"**/*.nr"}
	}
}
