package web

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the name of the page session cookie.
const SessionName = "ifcreuse-session"

// Session value keys.
const (
	sessionKeyToken    = "token"
	sessionKeyUserName = "user_name"
	sessionKeyAdmin    = "admin"
)

const sessionMaxAge = 24 * 60 * 60

// SessionManager keeps the API token of a logged-in page user in a signed cookie.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates the cookie store. The secret is SHA-256 hashed
// into the signing key, so it must stay stable across restarts.
func NewSessionManager(secret string, secure bool) *SessionManager {
	key := sha256.Sum256([]byte(secret))
	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// sessionUser is what the pages know about the current user
type sessionUser struct {
	Token string
	Name  string
	Admin bool
}

func (m *SessionManager) get(r *http.Request) *sessions.Session {
	// A cookie that fails to decode yields a fresh session; ignore the error.
	session, _ := m.store.Get(r, SessionName)
	return session
}

// User returns the logged-in user, or false
func (m *SessionManager) User(r *http.Request) (sessionUser, bool) {
	session := m.get(r)
	token, _ := session.Values[sessionKeyToken].(string)
	if token == "" {
		return sessionUser{}, false
	}
	name, _ := session.Values[sessionKeyUserName].(string)
	admin, _ := session.Values[sessionKeyAdmin].(bool)
	return sessionUser{Token: token, Name: name, Admin: admin}, true
}

// Login stores the token and display name
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, user sessionUser) error {
	session := m.get(r)
	session.Values[sessionKeyToken] = user.Token
	session.Values[sessionKeyUserName] = user.Name
	session.Values[sessionKeyAdmin] = user.Admin
	return session.Save(r, w)
}

// Logout expires the cookie
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session := m.get(r)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// Flash queues a one-shot message for the next page
func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, msg string) error {
	session := m.get(r)
	session.AddFlash(msg)
	return session.Save(r, w)
}

// Flashes pops the queued messages
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session := m.get(r)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save(r, w)
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
