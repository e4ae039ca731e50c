// Package store provides the persistence backends for the ledger and the
// team registry: JSON files matching the on-disk formats of the original
// deployment, or a SQL database (sqlite/Postgres).
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/game-tec/pointsboard/internal/ledger"
	"github.com/game-tec/pointsboard/internal/teams"
)

// LedgerFile persists the ledger as a JSON object keyed by modality, each
// value an insertion-ordered object of name → score. A missing or corrupt
// file loads as an empty ledger, matching the original system.
type LedgerFile struct{ path string }

func NewLedgerFile(path string) *LedgerFile { return &LedgerFile{path: path} }

func (f *LedgerFile) Load() (ledger.Ledger, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	var l ledger.Ledger
	if err := json.Unmarshal(b, &l); err != nil {
		return ledger.NewLedger(), nil
	}
	return l, nil
}

func (f *LedgerFile) Save(l ledger.Ledger) error {
	return writeJSONFile(f.path, l)
}

// RegistryFile persists the team registry as a single JSON document:
// {teams, students, nextId}.
type RegistryFile struct{ path string }

func NewRegistryFile(path string) *RegistryFile { return &RegistryFile{path: path} }

func (f *RegistryFile) Load() (teams.Registry, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return teams.NewRegistry(), nil
	}
	if err != nil {
		return teams.Registry{}, fmt.Errorf("load registry: %w", err)
	}
	var r teams.Registry
	if err := json.Unmarshal(b, &r); err != nil {
		return teams.NewRegistry(), nil
	}
	if r.Teams == nil {
		r.Teams = map[string]*teams.Team{}
	}
	if r.Students == nil {
		r.Students = map[string]*teams.Student{}
	}
	if r.NextID < 1 {
		r.NextID = 1
	}
	return r, nil
}

func (f *RegistryFile) Save(r teams.Registry) error {
	return writeJSONFile(f.path, r)
}

// writeJSONFile writes through a temp file and renames it into place so a
// crash mid-write never leaves a truncated state file. HTML escaping is off
// so accented names stay readable on disk.
func writeJSONFile(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
