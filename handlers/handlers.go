// Package handlers is the route layer: public pages, the authenticated
// inbox and trail CRUD, and the admin landing page.
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tanosveny/auth"
	"tanosveny/config"
	"tanosveny/crypto"
	"tanosveny/i18n"
	"tanosveny/models"
	"tanosveny/render"
	"tanosveny/store"
)

// App bundles the dependencies every handler needs. Nothing here is
// package-global; main constructs one App and registers it.
type App struct {
	cfg      *config.Config
	store    *store.Store
	sessions *auth.Manager
	renderer *render.Renderer
}

func New(cfg *config.Config, st *store.Store, sessions *auth.Manager, renderer *render.Renderer) *App {
	return &App{cfg: cfg, store: st, sessions: sessions, renderer: renderer}
}

// Register wires every route onto mux, prefixed with the configured
// base path. Unmatched paths fall through to the localized 404.
func (a *App) Register(mux *http.ServeMux) {
	base := a.cfg.BasePath

	mux.HandleFunc("GET "+base+"/{$}", a.Home)
	mux.HandleFunc("GET "+base+"/catalog", a.Catalog)
	mux.HandleFunc("GET "+base+"/contact", a.ContactForm)
	mux.HandleFunc("POST "+base+"/contact", a.ContactSubmit)

	mux.HandleFunc("GET "+base+"/register", a.RegisterForm)
	mux.HandleFunc("POST "+base+"/register", a.RegisterSubmit)
	mux.HandleFunc("GET "+base+"/login", a.LoginForm)
	mux.HandleFunc("POST "+base+"/login", a.LoginSubmit)
	mux.HandleFunc("POST "+base+"/logout", a.Logout)

	mux.Handle("GET "+base+"/inbox", a.sessions.RequireAuth(http.HandlerFunc(a.Inbox)))
	mux.Handle("GET "+base+"/admin", a.sessions.RequireAdmin(http.HandlerFunc(a.Admin)))

	mux.Handle("GET "+base+"/trails", a.sessions.RequireAuth(http.HandlerFunc(a.TrailList)))
	mux.Handle("GET "+base+"/trails/new", a.sessions.RequireAuth(http.HandlerFunc(a.TrailNew)))
	mux.Handle("POST "+base+"/trails", a.sessions.RequireAuth(http.HandlerFunc(a.TrailCreate)))
	mux.Handle("GET "+base+"/trails/{id}/edit", a.sessions.RequireAuth(http.HandlerFunc(a.TrailEdit)))
	mux.Handle("PUT "+base+"/trails/{id}", a.sessions.RequireAuth(http.HandlerFunc(a.TrailUpdate)))
	mux.Handle("DELETE "+base+"/trails/{id}", a.sessions.RequireAuth(http.HandlerFunc(a.TrailDelete)))

	mux.HandleFunc("/", a.NotFound)
}

// --- public pages ---

func (a *App) Home(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "index.html", map[string]any{"Title": "Tanösvény – Főoldal"})
}

func (a *App) Catalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.CatalogFilter{
		Park:       q.Get("park"),
		Settlement: q.Get("settlement"),
		Guided:     q.Get("guided"),
	}

	trails, err := a.store.ListTrailDetails(r.Context(), filter)
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	parks, err := a.store.ListParkNames(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	settlements, err := a.store.ListSettlementNames(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, "catalog.html", map[string]any{
		"Title":       "Tanösvény – Adatbázis",
		"Trails":      trails,
		"Parks":       parks,
		"Settlements": settlements,
		"Filters":     filter,
	})
}

func (a *App) ContactForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "contact.html", map[string]any{"Title": "Tanösvény – Kapcsolat"})
}

func (a *App) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	message := r.FormValue("message")
	if name == "" || email == "" || message == "" {
		a.badRequest(w, r, "FieldsRequired")
		return
	}

	if err := a.store.CreateMessage(r.Context(), name, email, message); err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, "contact-success.html", map[string]any{"Title": "Üzenet elküldve – Tanösvény"})
}

// --- auth ---

func (a *App) RegisterForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "register.html", map[string]any{"Title": "Regisztráció – Tanösvény"})
}

func (a *App) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	if name == "" || email == "" || password == "" {
		a.badRequest(w, r, "MissingData")
		return
	}

	if _, err := a.store.GetUserByEmail(r.Context(), email); err == nil {
		a.badRequest(w, r, "AccountExists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		a.serverError(w, r, err)
		return
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	if _, err := a.store.CreateUser(r.Context(), name, email, hash, models.RoleRegistered); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			a.badRequest(w, r, "AccountExists")
			return
		}
		a.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, a.cfg.BasePath+"/login", http.StatusSeeOther)
}

func (a *App) LoginForm(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if next == "" {
		next = a.cfg.BasePath + "/"
	}
	a.render(w, r, "login.html", map[string]any{
		"Title": "Bejelentkezés – Tanösvény",
		"Next":  next,
	})
}

func (a *App) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	// Unknown email and wrong password answer identically so accounts
	// cannot be enumerated.
	user, err := a.store.GetUserByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		a.badRequest(w, r, "InvalidLogin")
		return
	}
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	if !crypto.CheckPasswordHash(password, user.PasswordHash) {
		a.badRequest(w, r, "InvalidLogin")
		return
	}

	if err := a.sessions.SetUser(w, r, auth.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		a.serverError(w, r, err)
		return
	}

	// Only local targets; anything else falls back to home.
	next := r.FormValue("next")
	if !strings.HasPrefix(next, "/") {
		next = a.cfg.BasePath + "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Clear(w, r); err != nil {
		a.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, a.cfg.BasePath+"/", http.StatusSeeOther)
}

// --- authenticated pages ---

type inboxMessage struct {
	models.Message
	CreatedAtFormatted string
}

func (a *App) Inbox(w http.ResponseWriter, r *http.Request) {
	msgs, err := a.store.ListMessages(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	rows := make([]inboxMessage, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, inboxMessage{Message: m, CreatedAtFormatted: FormatTimestamp(m.CreatedAt)})
	}

	a.render(w, r, "inbox.html", map[string]any{
		"Title":    "Tanösvény – Üzenetek",
		"Messages": rows,
	})
}

func (a *App) Admin(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "admin.html", map[string]any{"Title": "Admin – Tanösvény"})
}

// --- trail CRUD ---

func (a *App) TrailList(w http.ResponseWriter, r *http.Request) {
	trails, err := a.store.ListTrails(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	a.render(w, r, "trail-list.html", map[string]any{
		"Title":  "Útvonalak – Tanösvény",
		"Trails": trails,
	})
}

func (a *App) TrailNew(w http.ResponseWriter, r *http.Request) {
	settlements, err := a.store.ListSettlements(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}
	a.render(w, r, "trail-form.html", map[string]any{
		"Title":       "Új út hozzáadása – Tanösvény",
		"Trail":       (*models.Trail)(nil),
		"Settlements": settlements,
	})
}

func (a *App) TrailCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := a.store.CreateTrail(r.Context(), trailInputFromForm(r)); err != nil {
		a.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, a.cfg.BasePath+"/trails", http.StatusSeeOther)
}

func (a *App) TrailEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.notFound(w, r)
		return
	}

	trail, err := a.store.GetTrail(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		a.notFound(w, r)
		return
	}
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	settlements, err := a.store.ListSettlements(r.Context())
	if err != nil {
		a.serverError(w, r, err)
		return
	}

	a.render(w, r, "trail-form.html", map[string]any{
		"Title":       "Út szerkesztése – Tanösvény",
		"Trail":       trail,
		"Settlements": settlements,
	})
}

func (a *App) TrailUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.notFound(w, r)
		return
	}

	if err := a.store.UpdateTrail(r.Context(), id, trailInputFromForm(r)); err != nil {
		a.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, a.cfg.BasePath+"/trails", http.StatusSeeOther)
}

func (a *App) TrailDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		a.notFound(w, r)
		return
	}

	if err := a.store.DeleteTrail(r.Context(), id); err != nil {
		a.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, a.cfg.BasePath+"/trails", http.StatusSeeOther)
}

// trailInputFromForm applies the shared create/update field rules:
// empty optional numerics become NULL, and the guided flag is set only
// when the submitted value is exactly "1".
func trailInputFromForm(r *http.Request) store.TrailInput {
	return store.TrailInput{
		Nev:         r.FormValue("name"),
		Hossz:       nullFloat(r.FormValue("length")),
		Allomas:     nullInt(r.FormValue("stops")),
		Ido:         nullInt(r.FormValue("duration")),
		Vezetes:     r.FormValue("guided") == "1",
		TelepulesID: parseID(r.FormValue("settlement_id")),
	}
}

func nullFloat(s string) sql.NullFloat64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func nullInt(s string) sql.NullInt64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

// --- shared plumbing ---

func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	http.Error(w, i18n.T(lang, "PageNotFound"), http.StatusNotFound)
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	lang := i18n.DetectLanguage(r)
	http.Error(w, i18n.T(lang, "NotFound"), http.StatusNotFound)
}

func (a *App) badRequest(w http.ResponseWriter, r *http.Request, key string) {
	lang := i18n.DetectLanguage(r)
	http.Error(w, i18n.T(lang, key), http.StatusBadRequest)
}

func (a *App) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg("handler error")
	lang := i18n.DetectLanguage(r)
	http.Error(w, i18n.T(lang, "ServerError"), http.StatusInternalServerError)
}

// render adds the request-scoped fields (current user, base path) the
// layout expects before handing off to the renderer.
func (a *App) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if user, ok := a.sessions.CurrentUser(r); ok {
		data["CurrentUser"] = user
	}
	data["BasePath"] = a.cfg.BasePath
	a.renderer.Render(w, r, name, data)
}
