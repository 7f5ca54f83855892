package storage

import (
	"fmt"

	"github.com/go-pkgz/lgr"
)

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	Path    string // sqlite database file, default ~/.taskdash/taskdash.db
	Redis   RedisConfig
	Log     lgr.L
}

// Open creates the configured backend and wraps it in an Adapter
func Open(opts Options) (*Adapter, error) {
	var (
		kv  KV
		err error
	)

	switch opts.Backend {
	case "", BackendSQLite:
		path := opts.Path
		if path == "" {
			if path, err = DefaultDatabasePath(); err != nil {
				return nil, fmt.Errorf("failed to get database path: %w", err)
			}
		}
		kv, err = OpenSQLite(path)
	case BackendRedis:
		kv, err = OpenRedis(opts.Redis)
	case BackendMemory:
		kv = NewMemoryKV()
	default:
		return nil, fmt.Errorf("unknown backend %q (use: sqlite, redis, memory)", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	return NewAdapter(kv, opts.Log), nil
}
