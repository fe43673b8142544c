package salesform

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"sync"

	"github.com/G-Node/salesform/salesform/db"
	"github.com/G-Node/salesform/salesform/form"
	"github.com/G-Node/salesform/salesform/web"
	"github.com/G-Node/salesform/salesform/worker"
)

// Service represents a full form service which contains a web server, a
// database for visitor sessions, and a worker that expires old sessions.
type Service struct {
	web    *web.Server
	db     *db.Connection
	worker *worker.Worker
	log    *log.Logger
	form   form.Form
	action form.SubmitAction
	Config *Config
	// serialises load, change and save of sessions
	mu sync.Mutex
}

// NewService creates a new Service with a given form and submit action.  A
// nil action simulates the submission.
func NewService(f form.Form, action form.SubmitAction, config Config) (*Service, error) {
	srv := new(Service)
	srv.log = log.New(ioutil.Discard, "", 0)
	config.setDefaults(srv.log)
	srv.Config = &config

	// DB
	conn, err := db.New(config.DBPath)
	if err != nil {
		return nil, err
	}
	srv.db = conn

	// Worker
	srv.worker = worker.New(srv.db, config.SessionTTL, config.SweepInterval)

	// Web server
	srv.web = web.New(config.Port)
	srv.setupWebRoutes()

	// set form and func
	srv.SetForm(f)
	srv.SetSubmitAction(action)
	return srv, nil
}

// SetLogger sets the logger for the service and its worker.
func (srv *Service) SetLogger(logger *log.Logger) {
	srv.log = logger
	srv.worker.SetLogger(logger)
}

// Start the service (worker and web server).  The form must be valid.
func (srv *Service) Start() error {
	if err := form.Validate(srv.form); err != nil {
		return fmt.Errorf("cannot start service: %w", err)
	}

	srv.log.Print("Starting worker")
	srv.worker.Start()

	srv.log.Print("Starting web service")
	if err := srv.web.Start(); err != nil {
		srv.worker.Stop()
		return fmt.Errorf("cannot start web server: %w", err)
	}
	srv.log.Printf("Web server started on %s", srv.web.Addr)
	return nil
}

// WaitForInterrupt blocks until the service receives an interrupt signal (SIGINT).
func (srv *Service) WaitForInterrupt() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt)
	<-sigchan
}

// Stop the service by gracefully shutting down the web service, stopping the
// worker, and closing the database connection, in that order.
func (srv *Service) Stop() {
	srv.log.Print("Stopping web service")
	srv.web.Stop()

	srv.log.Print("Stopping worker")
	srv.worker.Stop()

	srv.log.Print("Closing database connection")
	if err := srv.db.Close(); err != nil {
		srv.log.Printf("Error closing database: %v", err)
	}
	srv.log.Print("Service stopped")
}

// SetForm can be used to set or override the form for the service.  Sessions
// saved for a different form are reset on their next request.
func (srv *Service) SetForm(f form.Form) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.form = f
}

// SetSubmitAction can be used to set or override the action run on a valid
// submission.  A nil action simulates the submission.
func (srv *Service) SetSubmitAction(action form.SubmitAction) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if action == nil {
		action = form.SimulateSubmit
	}
	srv.action = action
}

// newController returns a controller for the service form in its initial
// state.
func (srv *Service) newController() (*form.Controller, error) {
	ctrl, err := form.NewController(srv.form)
	if err != nil {
		return nil, err
	}
	ctrl.SetSubmitAction(srv.action)
	return ctrl, nil
}
