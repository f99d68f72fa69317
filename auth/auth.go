// Package auth holds the cookie-backed session state and the two
// request gates: RequireAuth (redirect to login) and RequireAdmin
// (403, no redirect).
package auth

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"
	"net/url"

	"github.com/gorilla/sessions"

	"tanosveny/i18n"
	"tanosveny/models"
)

const SessionName = "tanosveny-session"

// Sessions carry a fixed absolute expiry; they are only saved on
// login/logout, never renewed on activity.
const sessionMaxAge = 2 * 60 * 60 // seconds

// SessionUser is the payload stored in the session on login.
type SessionUser struct {
	ID    int64
	Name  string
	Email string
	Role  models.Role
}

func (u SessionUser) IsAdmin() bool {
	return u.Role == models.RoleAdmin
}

func init() {
	gob.Register(SessionUser{})
}

type Manager struct {
	store    *sessions.CookieStore
	basePath string
}

// NewManager derives two 32-byte keys from the session secret: an HMAC
// signing key and an AES content-encryption key.
func NewManager(secret, basePath string) *Manager {
	authKey := sha256.Sum256([]byte(secret + "auth"))
	encKey := sha256.Sum256([]byte(secret + "encryption"))

	store := sessions.NewCookieStore(authKey[:], encKey[:])

	cookiePath := basePath
	if cookiePath == "" {
		cookiePath = "/"
	}
	store.Options = &sessions.Options{
		Path:     cookiePath,
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{store: store, basePath: basePath}
}

// CurrentUser returns the logged-in user attached to the request, if any.
func (m *Manager) CurrentUser(r *http.Request) (SessionUser, bool) {
	session, _ := m.store.Get(r, SessionName)
	user, ok := session.Values["user"].(SessionUser)
	return user, ok
}

func (m *Manager) SetUser(w http.ResponseWriter, r *http.Request, user SessionUser) error {
	session, _ := m.store.Get(r, SessionName)
	session.Values["user"] = user
	return session.Save(r, w)
}

func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// RequireAuth redirects anonymous requests to the login page, carrying
// the originally requested path in the next parameter.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.CurrentUser(r); !ok {
			target := r.URL.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, m.basePath+"/login?next="+url.QueryEscape(target), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anyone without the admin role with a localized
// 403 body. No redirect: "wrong role" is not "not logged in".
func (m *Manager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.CurrentUser(r)
		if !ok || !user.IsAdmin() {
			lang := i18n.DetectLanguage(r)
			http.Error(w, i18n.T(lang, "AccessDenied"), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
