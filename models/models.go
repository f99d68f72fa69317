package models

import (
	"database/sql"
	"time"
)

// Role is the closed set of user roles. The database stores the string
// value; anything outside this set is rejected at the boundary.
type Role string

const (
	RoleRegistered Role = "registered"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleRegistered || r == RoleAdmin
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Message is a contact-form submission. CreatedAt stays untyped text
// because stored timestamps are rendered through the tolerant inbox
// formatter, never interpreted as time.Time on the way out.
type Message struct {
	ID        int64
	Name      string
	Email     string
	Body      string
	CreatedAt string
}

// Trail mirrors the ut table. The optional numeric columns are NULL
// when the submitting form left them empty.
type Trail struct {
	ID           int64
	Nev          string
	Hossz        sql.NullFloat64
	Allomas      sql.NullInt64
	Ido          sql.NullInt64
	Vezetes      bool
	TelepulesID  int64
	TelepulesNev string
}

type Settlement struct {
	ID  int64
	Nev string
}

// TrailDetail is one row of the v_ut_reszletes view. Vezetes carries
// the display string ('van'/'nincs') produced by the catalog query.
type TrailDetail struct {
	ID           int64
	UtNev        string
	Hossz        sql.NullFloat64
	Allomas      sql.NullInt64
	Ido          sql.NullInt64
	Vezetes      string
	TelepulesNev string
	NpNev        string
}
