// Form page, JSON API and session handling
package salesform

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/G-Node/salesform/salesform/db"
	"github.com/G-Node/salesform/salesform/form"
	"github.com/G-Node/salesform/salesform/web"
	"github.com/G-Node/salesform/templates"
	"github.com/gorilla/mux"
)

// sessionHandler is a handler that works on the form controller of the
// visitor's session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, ctrl *form.Controller)

// failFunc writes an error response.
type failFunc func(w http.ResponseWriter, status int, message string)

// reqSessionHandler acts as middleware that loads the visitor's form state
// before the handler runs and saves it afterwards.  Visitors without a valid
// session cookie get a new session.  Requests are serialised so the events of
// a visitor are applied in the order they arrive.
func (srv *Service) reqSessionHandler(handler sessionHandler, fail failFunc) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		srv.mu.Lock()
		defer srv.mu.Unlock()

		ctrl, err := srv.newController()
		if err != nil {
			srv.log.Printf("Failed to create form controller: %v", err)
			fail(w, http.StatusInternalServerError, "Form is not available")
			return
		}

		sess := srv.loadSession(r)
		if sess == nil {
			sess = db.NewSession(ctrl.State())
			if err := srv.db.InsertSession(sess); err != nil {
				srv.log.Printf("Failed to create session: %v", err)
				fail(w, http.StatusInternalServerError, "Error creating session")
				return
			}
		} else if !ctrl.Restore(sess.State) {
			srv.log.Printf("Session %s does not match the form; resetting", sess.ID)
		}

		cookie := http.Cookie{
			Name:     srv.Config.CookieName,
			Value:    sess.ID,
			Path:     "/",
			Expires:  time.Now().Add(srv.Config.SessionTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		http.SetCookie(w, &cookie)

		handler(w, r, ctrl)

		sess.State = ctrl.State()
		if err := srv.db.UpdateSession(sess); err != nil {
			srv.log.Printf("Failed to save session %s: %v", sess.ID, err)
		}
	}
}

// loadSession returns the session named by the request cookie or nil if
// there is none.
func (srv *Service) loadSession(r *http.Request) *db.Session {
	cookie, err := r.Cookie(srv.Config.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	sess, err := srv.db.GetSession(cookie.Value)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			srv.log.Printf("Failed to read session: %v", err)
		}
		return nil
	}
	return sess
}

// setupWebRoutes sets up the form page, the JSON API and the static assets.
func (srv *Service) setupWebRoutes() {
	router := srv.web.Router
	router.StrictSlash(true)

	page := srv.web.ErrorResponse
	router.HandleFunc("/", srv.reqSessionHandler(srv.renderForm, page)).Methods("GET")
	router.HandleFunc("/", srv.reqSessionHandler(srv.processForm, page)).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", srv.reqSessionHandler(srv.apiState, web.JSONError)).Methods("GET")
	api.HandleFunc("/sections/{index}/toggle", srv.reqSessionHandler(srv.apiToggle, web.JSONError)).Methods("POST")
	api.HandleFunc("/fields/{name}", srv.reqSessionHandler(srv.apiChange, web.JSONError)).Methods("POST")
	api.HandleFunc("/submit", srv.reqSessionHandler(srv.apiSubmit, web.JSONError)).Methods("POST")
	api.HandleFunc("/reset", srv.reqSessionHandler(srv.apiReset, web.JSONError)).Methods("POST")

	router.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", http.FileServer(http.Dir("./assets"))))
}

// writeForm renders the form page with the given status code.  A non-nil
// result adds the submission notice and summary.
func (srv *Service) writeForm(w http.ResponseWriter, status int, ctrl *form.Controller, result *form.Result) {
	tmpl := template.New("layout")
	tmpl, err := tmpl.Parse(templates.Layout)
	if err == nil {
		tmpl, err = tmpl.Parse(templates.Form)
	}
	if err == nil {
		tmpl, err = tmpl.Parse(templates.Summary)
	}
	if err != nil {
		srv.log.Printf("Failed to parse form templates: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error showing form")
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, newFormView(ctrl, result)); err != nil {
		srv.log.Printf("Failed to render form: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Error showing form")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (srv *Service) renderForm(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	srv.writeForm(w, http.StatusOK, ctrl, nil)
}

// processForm applies the posted values in form order and then performs the
// action of the button that was used: a section toggle, a refresh or a
// submission.
func (srv *Service) processForm(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	if err := r.ParseForm(); err != nil {
		srv.log.Printf("Failed to parse form: %v", err)
		srv.web.ErrorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	postValues := r.PostForm
	for _, section := range ctrl.Form().Sections {
		for _, elem := range section.Elements {
			if values, ok := postValues[elem.Name]; ok && len(values) > 0 {
				ctrl.Change(elem.Name, values[0])
			} else if elem.Type == form.CheckboxInput {
				// unchecked boxes are not posted
				ctrl.Change(elem.Name, "")
			}
		}
	}

	if toggle := postValues.Get("_toggle"); toggle != "" {
		idx, err := strconv.Atoi(toggle)
		if err == nil {
			err = ctrl.Toggle(idx)
		}
		if err != nil {
			srv.web.ErrorResponse(w, http.StatusNotFound, "No such section")
			return
		}
		srv.writeForm(w, http.StatusOK, ctrl, nil)
		return
	}

	if postValues.Get("_action") == "refresh" {
		srv.writeForm(w, http.StatusOK, ctrl, nil)
		return
	}

	result, err := ctrl.Submit()
	if err != nil {
		srv.log.Printf("Submission failed: %v", err)
		srv.web.ErrorResponse(w, http.StatusInternalServerError, "Submission failed")
		return
	}
	if !result.Valid {
		srv.writeForm(w, http.StatusUnprocessableEntity, ctrl, nil)
		return
	}
	srv.log.Printf("Form submitted with %d values", len(result.Submitted))
	srv.writeForm(w, http.StatusOK, ctrl, &result)
}

func (srv *Service) apiState(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	web.JSONResponse(w, http.StatusOK, newStateView(ctrl))
}

func (srv *Service) apiToggle(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err == nil {
		err = ctrl.Toggle(idx)
	}
	if err != nil {
		web.JSONError(w, http.StatusNotFound, "no such section")
		return
	}
	web.JSONResponse(w, http.StatusOK, newStateView(ctrl))
}

// fieldChange is the request body of a field change.
type fieldChange struct {
	Value string `json:"value"`
}

func (srv *Service) apiChange(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	var change fieldChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		web.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := ctrl.Change(mux.Vars(r)["name"], change.Value); err != nil {
		if errors.Is(err, form.ErrUnknownField) {
			web.JSONError(w, http.StatusNotFound, "no such field")
			return
		}
		web.JSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	web.JSONResponse(w, http.StatusOK, newStateView(ctrl))
}

func (srv *Service) apiSubmit(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	result, err := ctrl.Submit()
	if err != nil {
		srv.log.Printf("Submission failed: %v", err)
		web.JSONError(w, http.StatusInternalServerError, "submission failed")
		return
	}
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	} else {
		srv.log.Printf("Form submitted with %d values", len(result.Submitted))
	}
	web.JSONResponse(w, status, result)
}

func (srv *Service) apiReset(w http.ResponseWriter, r *http.Request, ctrl *form.Controller) {
	ctrl.Reset()
	web.JSONResponse(w, http.StatusOK, newStateView(ctrl))
}
