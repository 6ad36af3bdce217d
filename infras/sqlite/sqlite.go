package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"guesthouse/config"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const (
	readMaxIdleConnection = 4
	readMaxOpenConnection = 4
)

// Connection pairs a read pool with a single-connection write handle against
// the same database file. Capping the write side at one open connection
// serializes mutations so each commits as a whole before the next begins.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB

	// Path is the database file the backup manager snapshots.
	Path string
}

func New(config *config.Config) *Connection {
	path := config.DB.SQLite.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create database directory")
		}
	}

	write := open("write", path, config.DB.SQLite.BusyTimeoutMS)
	write.SetMaxOpenConns(1)

	read := open("read", path, config.DB.SQLite.BusyTimeoutMS)
	read.SetMaxIdleConns(readMaxIdleConnection)
	read.SetMaxOpenConns(readMaxOpenConnection)

	return &Connection{
		Read:  read,
		Write: write,
		Path:  path,
	}
}

func open(name, path string, busyTimeoutMS int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path,
		busyTimeoutMS,
	)

	sqlDB, err := sqlx.Connect("sqlite", descriptor)
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Str("path", path).Msg("Failed connecting to database")
	}

	log.
		Info().
		Str("name", name).
		Str("path", path).
		Msg("Connected to database")

	return sqlDB
}
