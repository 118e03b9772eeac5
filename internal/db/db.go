package db

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tradebridge/internal/config"
)

type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// Open opens the sqlite ledger file. WAL with synchronous=FULL keeps appends
// durable at commit; the single-connection pool serializes writers so
// autoincrement ids stay unique and monotonic under concurrent requests.
func Open(cfg config.DBConfig) (*DB, error) {
	busyMs := int(cfg.BusyTimeout / time.Millisecond)
	if busyMs <= 0 {
		busyMs = 5000
	}
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=%d", cfg.Path, busyMs)

	gcfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	gdb, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, err
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	return &DB{Gorm: gdb, SQL: sqldb}, nil
}

func Close(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

func Ping(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Ping()
}

// Checkpoint folds the WAL back into the main database file. Run periodically
// so the audit trail survives in the primary file even if the WAL is lost.
func Checkpoint(db *DB) error {
	if db == nil || db.SQL == nil {
		return nil
	}
	_, err := db.SQL.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return err
}
