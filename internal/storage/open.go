package storage

import (
	"fmt"
	"strings"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

type OpenOptions struct {
	Backend Backend
	// Path is the database file for sqlite and the directory for file.
	Path string
}

func Open(opts OpenOptions) (SlotStore, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(string(opts.Backend)))) {
	case BackendSQLite, "":
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("%w: sqlite backend requires a path", ErrBadConfig)
		}
		store, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendFile:
		store, err := NewFileSlotStore(opts.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory:
		return NewMemorySlotStore(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrBadConfig, opts.Backend)
	}
}
