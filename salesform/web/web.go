package web

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/G-Node/salesform/templates"
	"github.com/gorilla/mux"
)

// ErrorResponse logs an error and renders an error page with the given message,
// returning the given status code to the user.
func (ws *Server) ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	tmpl := template.New("layout")
	tmpl, err := tmpl.Parse(templates.Layout)
	if err != nil {
		tmpl = template.New("content")
	}
	tmpl, err = tmpl.Parse(templates.Fail)
	if err != nil {
		w.Write([]byte(message))
		return
	}
	errinfo := struct {
		StatusCode int
		StatusText string
		Message    string
	}{
		status,
		http.StatusText(status),
		message,
	}
	if err := tmpl.Execute(w, &errinfo); err != nil {
		log.Printf("Error rendering fail page: %v", err)
	}
}

// JSONResponse writes v as the JSON body of the response with the given
// status code.
func JSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

// JSONError writes an error object with the given status code.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"error": message})
}

// Server implements the web server for the form service.
type Server struct {
	*http.Server
	Router *mux.Router
}

// New returns a web Server with an initialised mux.Router and http.Server
// listening on the given port.
func New(port uint16) *Server {
	srv := new(Server)
	srv.Router = new(mux.Router)
	httpsrv := new(http.Server)
	httpsrv.Handler = srv.Router

	httpsrv.Addr = fmt.Sprintf(":%d", port)
	// Good practice to set timeouts to avoid Slowloris attacks.
	httpsrv.WriteTimeout = time.Second * 15
	httpsrv.ReadTimeout = time.Second * 15
	httpsrv.IdleTimeout = time.Second * 60
	srv.Server = httpsrv
	return srv
}

// Start opens the listener and serves in a goroutine.  This method does not
// block. Use WaitForInterrupt() or implement your own blocking function to
// wait for any other stop condition.  Addr is updated to the address actually
// listened on, so a server on port 0 reports the port it was given.
func (ws *Server) Start() error {
	ln, err := net.Listen("tcp", ws.Addr)
	if err != nil {
		return err
	}
	ws.Addr = ln.Addr().String()
	go func() {
		if err := ws.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Println(err)
		}
	}()
	return nil
}

// Stop gracefully stops the web service.
func (ws *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	// Gracefully shut down, waiting for the timeout deadline for connections to close.
	ws.Shutdown(ctx)
}
