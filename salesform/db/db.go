package db

import (
	_ "github.com/mattn/go-sqlite3"
	"xorm.io/xorm"
	"xorm.io/xorm/log"
	"xorm.io/xorm/names"
)

// Connection is a handle on the session store.
type Connection struct {
	engine *xorm.Engine
}

// Close the database.
func (conn *Connection) Close() error {
	return conn.engine.Close()
}

// New returns a database connection for the sqlite db file at the given path.
// If it does not exist it is created.  Use "file::memory:?cache=shared" for a
// store that is discarded when the service stops.
func New(path string) (*Connection, error) {
	db, err := xorm.NewEngine("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.Logger().SetLevel(log.LOG_WARNING)
	db.SetMapper(names.GonicMapper{})
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.Sync2(new(Session)); err != nil {
		db.Close()
		return nil, err
	}
	return &Connection{db}, nil
}
