package worker

import (
	"io/ioutil"
	"log"
	"time"

	"github.com/G-Node/salesform/salesform/db"
)

// Worker periodically removes sessions that have been idle for longer than
// the configured TTL.
type Worker struct {
	stop     chan bool
	done     chan bool
	running  bool
	ttl      time.Duration
	interval time.Duration
	db       *db.Connection
	log      *log.Logger
}

// New returns a Worker that sweeps the sessions of dbconn every interval,
// removing sessions idle for longer than ttl.
func New(dbconn *db.Connection, ttl, interval time.Duration) *Worker {
	w := new(Worker)
	w.stop = make(chan bool)
	w.done = make(chan bool)
	w.ttl = ttl
	w.interval = interval
	w.db = dbconn
	w.log = log.New(ioutil.Discard, "", 0)
	return w
}

// SetLogger sets the logger used to report sweeps.
func (w *Worker) SetLogger(logger *log.Logger) {
	w.log = logger
}

// Sweep removes all expired sessions once and returns the number removed.
func (w *Worker) Sweep() (int64, error) {
	n, err := w.db.DeleteSessionsBefore(time.Now().Add(-w.ttl))
	if err != nil {
		w.log.Printf("Session sweep failed: %v", err)
		return 0, err
	}
	if n > 0 {
		w.log.Printf("Removed %d expired sessions", n)
	}
	return n, nil
}

// Start runs the sweep loop in a goroutine and returns.
func (w *Worker) Start() {
	w.running = true
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Sweep()
			case <-w.stop:
				return
			}
		}
	}()
	w.log.Print("Worker started")
}

// Stop ends the sweep loop and waits for it to return.  It does nothing if
// the worker is not running.
func (w *Worker) Stop() {
	if !w.running {
		return
	}
	w.stop <- true
	<-w.done
	w.running = false
}
