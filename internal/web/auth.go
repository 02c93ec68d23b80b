package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/moodmix/internal/server"
	"github.com/desertthunder/moodmix/internal/session"
	"github.com/desertthunder/moodmix/internal/shared"
)

const (
	msgUserExists    = "User already exists. Try logging in."
	msgBadLogin      = "Invalid username or password."
	msgMissingFields = "Username and password are required."
)

type sessionKey struct{}

// SessionFrom returns the session attached by [App.RequireSession].
func SessionFrom(ctx context.Context) (session.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(session.Session)
	return s, ok
}

// lookupSession resolves the request cookie to a live session.
func (a *App) lookupSession(r *http.Request) (session.Session, bool) {
	id := session.IDFromRequest(r)
	if id == "" {
		return session.Session{}, false
	}
	s, err := a.sessions.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, shared.ErrSessionNotFound) {
			a.logger.Error("session lookup failed", "error", err)
		}
		return session.Session{}, false
	}
	return s, true
}

// RequireSession gates a route behind a live session.
//
// Pages redirect to /login. Data routes answer 401 JSON, or pass through untouched when
// data protection is off.
func (a *App) RequireSession(data bool) server.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if data && !a.protectData {
				next.ServeHTTP(w, r)
				return
			}

			s, ok := a.lookupSession(r)
			if !ok {
				if data {
					writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
					return
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, s)))
		})
	}
}

func (a *App) registerForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, "register", pageData{Title: "Register"})
}

func (a *App) register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := credentials(r)
	if !ok {
		writeText(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	_, err := a.users.Register(r.Context(), username, password)
	switch {
	case err == nil:
		a.logger.Info("user registered", "username", username)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, shared.ErrConflict):
		writeText(w, http.StatusConflict, msgUserExists)
	case errors.Is(err, shared.ErrInvalidInput):
		writeText(w, http.StatusBadRequest, msgMissingFields)
	default:
		a.logger.Error("registration failed", "username", username, "error", err)
		writeText(w, http.StatusInternalServerError, "Registration failed.")
	}
}

func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, "login", pageData{Title: "Log in"})
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	username, password, _ := credentials(r)

	user, err := a.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, shared.ErrUnauthorized) && !errors.Is(err, shared.ErrInvalidInput) {
			a.logger.Error("authentication failed", "username", username, "error", err)
		}
		writeText(w, http.StatusUnauthorized, msgBadLogin)
		return
	}

	s, err := a.sessions.Create(r.Context(), user.Username)
	if err != nil {
		a.logger.Error("failed to create session", "username", user.Username, "error", err)
		writeText(w, http.StatusInternalServerError, "Login failed.")
		return
	}

	session.SetCookie(w, s, a.cookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if id := session.IDFromRequest(r); id != "" {
		if err := a.sessions.Delete(r.Context(), id); err != nil {
			a.logger.Warn("failed to delete session", "error", err)
		}
	}
	session.ClearCookie(w, a.cookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// credentials reads the username and password form fields.
func credentials(r *http.Request) (username, password string, ok bool) {
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	username = r.PostForm.Get("username")
	password = r.PostForm.Get("password")
	return username, password, username != "" && password != ""
}
