package database

import (
	"errors"

	"attachexport/models"

	"gorm.io/gorm"
)

// Registry opens one connection per database and resolves table references
// against it. Path-like references select a SQLite file; plain table names
// use the base configuration.
type Registry struct {
	base  Config
	conns map[string]*gorm.DB
}

// NewRegistry creates a registry over the base configuration
func NewRegistry(base Config) *Registry {
	return &Registry{
		base:  base,
		conns: map[string]*gorm.DB{},
	}
}

// Resolve returns the row source holding ref and the bare table name
func (r *Registry) Resolve(ref string) (models.RowSource, string, error) {
	cfg := r.base
	table := ref

	if path, name, ok := ParseTableRef(ref); ok {
		cfg.Type = "sqlite"
		cfg.Path = path
		table = name
	}

	key := cfg.Type + ":" + cfg.Path
	db, ok := r.conns[key]
	if !ok {
		var err error
		if db, err = Connect(cfg); err != nil {
			return nil, table, err
		}
		r.conns[key] = db
	}

	return NewSource(db), table, nil
}

// Close closes every connection opened by the registry
func (r *Registry) Close() error {
	var errs []error
	for key, db := range r.conns {
		if err := Close(db); err != nil {
			errs = append(errs, err)
		}
		delete(r.conns, key)
	}
	return errors.Join(errs...)
}
