// repository/db.go
package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/config"
)

// dialect covers the few differences between the two SQL engines
type dialect struct {
	driver   string
	numbered bool
	schema   string
}

var (
	postgresDialect = dialect{driver: "postgres", numbered: true, schema: postgresSchema}
	sqliteDialect   = dialect{driver: "sqlite3", numbered: false, schema: sqliteSchema}
)

// rebind turns ? placeholders into $1, $2... for postgres
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NewStore opens the store selected by the configuration
func NewStore(cfg *config.Config, logger *logrus.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return NewMemoryStore(logger), nil
	case config.DriverSQLite:
		return OpenSQLStore(sqliteDialect, cfg.SQLiteDSN(), logger)
	case config.DriverPostgres:
		return OpenSQLStore(postgresDialect, cfg.PostgresDSN(), logger)
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// openDB connects and pings the database
func openDB(d dialect, dsn string, logger *logrus.Logger) (*sql.DB, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if d.driver == sqliteDialect.driver {
		// a single connection keeps writers serialised on the local file
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxIdleConns(10)
		db.SetMaxOpenConns(50)
		db.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.WithField("driver", d.driver).Info("Successfully connected to the database")
	return db, nil
}
