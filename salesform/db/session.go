package db

import (
	"errors"
	"time"

	"github.com/G-Node/salesform/salesform/form"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no session matches the requested ID.
var ErrNotFound = errors.New("not found")

// Session holds the form state of a single visitor.
type Session struct {
	// Session ID (stored in the cookie)
	ID string `xorm:"pk"`
	// Form state at the end of the last request
	State form.State `xorm:"text json"`
	// Time when the session was created
	Created time.Time
	// Unix time in nanoseconds of the last request (for expiration)
	Touched int64 `xorm:"index"`
}

// NewSession creates a new session with the given form state and a new
// unique ID.
func NewSession(state form.State) *Session {
	sess := new(Session)
	sess.ID = uuid.New().String()
	sess.State = state
	sess.Created = time.Now()
	sess.Touched = sess.Created.UnixNano()
	return sess
}

// LastUsed returns the time of the last request of the session.
func (sess *Session) LastUsed() time.Time {
	return time.Unix(0, sess.Touched)
}

// InsertSession inserts a new Session into the database.
func (conn *Connection) InsertSession(sess *Session) error {
	_, err := conn.engine.Insert(sess)
	return err
}

// GetSession retrieves a session from the database given its ID.
func (conn *Connection) GetSession(id string) (*Session, error) {
	sess := new(Session)
	if has, err := conn.engine.NoAutoCondition().ID(id).Get(sess); err != nil {
		return nil, err
	} else if !has {
		return nil, ErrNotFound
	}
	return sess, nil
}

// UpdateSession stores the current state of an existing session and marks
// it as used now.
func (conn *Connection) UpdateSession(sess *Session) error {
	sess.Touched = time.Now().UnixNano()
	n, err := conn.engine.ID(sess.ID).AllCols().Update(sess)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSession removes the session with the given ID.
func (conn *Connection) DeleteSession(id string) error {
	_, err := conn.engine.NoAutoCondition().ID(id).Delete(new(Session))
	return err
}

// DeleteSessionsBefore removes every session that has not been used since
// the given time and returns the number of sessions removed.
func (conn *Connection) DeleteSessionsBefore(t time.Time) (int64, error) {
	return conn.engine.NoAutoCondition().Where("touched < ?", t.UnixNano()).Delete(new(Session))
}

// CountSessions returns the number of stored sessions.
func (conn *Connection) CountSessions() (int64, error) {
	return conn.engine.NoAutoCondition().Count(new(Session))
}
