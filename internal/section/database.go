package section

import (
	"github.com/anyshake/prisma/internal/endpoint"
	"github.com/anyshake/prisma/internal/field"
)

var databaseEngines = []string{endpoint.EngineSQLite, "mysql", "postgres", "mssql"}

// DatabaseDraft holds database connectivity settings.
type DatabaseDraft struct {
	Endpoint string  `json:"endpoint" yaml:"endpoint" toml:"endpoint"`
	Username string  `json:"username" yaml:"username" toml:"username"`
	Password string  `json:"password" yaml:"password" toml:"password"`
	Database string  `json:"database" yaml:"database" toml:"database"`
	Prefix   string  `json:"prefix" yaml:"prefix" toml:"prefix"`
	Timeout  float64 `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// Database controls the database section.
type Database struct {
	controller[DatabaseDraft]
	editors map[string]editor

	engine string
	host   string
	port   string
}

// NewDatabase creates an inactive database controller.
func NewDatabase(opts Options) *Database {
	opts = opts.withDefaults()
	db := &Database{}
	db.controller = newController[DatabaseDraft](KeyDatabase, opts, db.derive, nil)
	db.editors = map[string]editor{
		"engine": func(raw string) bool {
			v, ok := field.Choice(db.notifier, "Database engine", raw, databaseEngines)
			if !ok {
				return false
			}
			return db.commit(func(*DatabaseDraft) { db.engine = v })
		},
		"host": func(raw string) bool {
			return db.commit(func(*DatabaseDraft) { db.host = raw })
		},
		"port": func(raw string) bool {
			v, ok := field.Port(db.notifier, raw)
			if !ok {
				return false
			}
			return db.commit(func(*DatabaseDraft) { db.port = v })
		},
		"username": db.plain(func(d *DatabaseDraft, v string) { d.Username = v }),
		"password": db.plain(func(d *DatabaseDraft, v string) { d.Password = v }),
		"database": db.plain(func(d *DatabaseDraft, v string) { d.Database = v }),
		"prefix": func(raw string) bool {
			v, ok := field.String(db.notifier, raw, field.NonEmpty("Table prefix"), field.Suffix("Table prefix", "_"))
			if !ok {
				return false
			}
			return db.commit(func(d *DatabaseDraft) { d.Prefix = v })
		},
		"timeout": func(raw string) bool {
			v, ok := field.Number(db.notifier, "Connection timeout", raw, field.AtLeast(0))
			if !ok {
				return false
			}
			return db.commit(func(d *DatabaseDraft) { d.Timeout = v })
		},
	}
	return db
}

func (db *Database) plain(set func(*DatabaseDraft, string)) editor {
	return func(raw string) bool {
		return db.commit(func(d *DatabaseDraft) { set(d, raw) })
	}
}

func (db *Database) derive(d *DatabaseDraft) {
	d.Endpoint = endpoint.Database(db.engine, db.host, db.port)
}

func (db *Database) Activate() {
	if db.state != StateUninitialized {
		return
	}
	db.engine = endpoint.EngineSQLite
	db.host = ""
	db.port = ""
	db.seed(DatabaseDraft{Prefix: "as_", Timeout: 5})
}

func (db *Database) Fields() []Field {
	fields := []Field{
		{Name: "engine", Label: "Database engine", Kind: KindChoice, Options: databaseEngines},
	}
	if db.engine == endpoint.EngineSQLite {
		fields = append(fields, Field{Name: "database", Label: "Database path", Kind: KindString})
	} else {
		fields = append(fields,
			Field{Name: "host", Label: "Database host", Kind: KindString},
			Field{Name: "port", Label: "Database port", Kind: KindPort},
			Field{Name: "username", Label: "Username", Kind: KindString},
			Field{Name: "password", Label: "Password", Kind: KindString},
			Field{Name: "database", Label: "Database name", Kind: KindString},
		)
	}
	return append(fields,
		Field{Name: "prefix", Label: "Table prefix", Kind: KindString, Help: "Must end with an underscore"},
		Field{Name: "timeout", Label: "Connection timeout (s)", Kind: KindNumber},
	)
}

func (db *Database) Value(name string) (string, bool) {
	switch name {
	case "engine":
		return db.engine, true
	case "host":
		return db.host, true
	case "port":
		return db.port, true
	case "username":
		return db.draft.Username, true
	case "password":
		return db.draft.Password, true
	case "database":
		return db.draft.Database, true
	case "prefix":
		return db.draft.Prefix, true
	case "timeout":
		return formatNumber(db.draft.Timeout), true
	}
	return "", false
}

func (db *Database) Edit(name, raw string) (bool, error) {
	return db.edit(db.editors, name, raw)
}
