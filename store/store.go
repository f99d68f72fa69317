// Package store owns the sqlite database: schema migrations, seeding,
// and every query the handlers run. Handlers receive a *Store rather
// than reaching for a package-level connection.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"tanosveny/models"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- users ---

// GetUserByEmail looks a user up by exact (case-sensitive) email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?", email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, name, email, passwordHash string, role models.Role) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)",
		name, email, passwordHash, string(role))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	id, _ := result.LastInsertId()
	return id, nil
}

// --- messages ---

func (s *Store) CreateMessage(ctx context.Context, name, email, body string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messages (name, email, message) VALUES (?, ?, ?)", name, email, body)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (s *Store) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, message, created_at FROM messages ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// --- catalog ---

// CatalogFilter carries the optional catalog query parameters. Guided
// is "yes", "no" or empty (no filter).
type CatalogFilter struct {
	Park       string
	Settlement string
	Guided     string
}

// ListTrailDetails queries the read-only v_ut_reszletes view, adding a
// parameterized AND clause per supplied filter.
func (s *Store) ListTrailDetails(ctx context.Context, f CatalogFilter) ([]models.TrailDetail, error) {
	query := `SELECT id, ut_nev, hossz, allomas, ido,
       CASE WHEN vezetes = 1 THEN 'van' ELSE 'nincs' END AS vezetes,
       telepules_nev, np_nev
FROM v_ut_reszletes
WHERE 1=1`
	var args []any

	if f.Park != "" {
		query += " AND np_nev = ?"
		args = append(args, f.Park)
	}
	if f.Settlement != "" {
		query += " AND telepules_nev = ?"
		args = append(args, f.Settlement)
	}
	switch f.Guided {
	case "yes":
		query += " AND vezetes = 1"
	case "no":
		query += " AND vezetes = 0"
	}

	query += " ORDER BY ut_nev"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying trail details: %w", err)
	}
	defer rows.Close()

	var details []models.TrailDetail
	for rows.Next() {
		var d models.TrailDetail
		if err := rows.Scan(&d.ID, &d.UtNev, &d.Hossz, &d.Allomas, &d.Ido, &d.Vezetes, &d.TelepulesNev, &d.NpNev); err != nil {
			return nil, fmt.Errorf("scanning trail detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (s *Store) ListParkNames(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, "SELECT DISTINCT np_nev FROM v_ut_reszletes ORDER BY np_nev")
}

func (s *Store) ListSettlementNames(ctx context.Context) ([]string, error) {
	return s.listNames(ctx, "SELECT DISTINCT telepules_nev FROM v_ut_reszletes ORDER BY telepules_nev")
}

func (s *Store) listNames(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// --- trails ---

// TrailInput is the field set shared by trail create and update.
type TrailInput struct {
	Nev         string
	Hossz       sql.NullFloat64
	Allomas     sql.NullInt64
	Ido         sql.NullInt64
	Vezetes     bool
	TelepulesID int64
}

func (s *Store) ListTrails(ctx context.Context) ([]models.Trail, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT u.id, u.nev, u.hossz, u.allomas, u.ido, u.vezetes, u.telepulesid, t.nev AS telepules_nev
FROM ut u
JOIN telepules t ON t.id = u.telepulesid
ORDER BY u.nev`)
	if err != nil {
		return nil, fmt.Errorf("querying trails: %w", err)
	}
	defer rows.Close()

	var trails []models.Trail
	for rows.Next() {
		var t models.Trail
		if err := rows.Scan(&t.ID, &t.Nev, &t.Hossz, &t.Allomas, &t.Ido, &t.Vezetes, &t.TelepulesID, &t.TelepulesNev); err != nil {
			return nil, fmt.Errorf("scanning trail: %w", err)
		}
		trails = append(trails, t)
	}
	return trails, rows.Err()
}

func (s *Store) GetTrail(ctx context.Context, id int64) (*models.Trail, error) {
	var t models.Trail
	err := s.db.QueryRowContext(ctx,
		"SELECT id, nev, hossz, allomas, ido, vezetes, telepulesid FROM ut WHERE id = ?", id).
		Scan(&t.ID, &t.Nev, &t.Hossz, &t.Allomas, &t.Ido, &t.Vezetes, &t.TelepulesID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying trail: %w", err)
	}
	return &t, nil
}

func (s *Store) CreateTrail(ctx context.Context, in TrailInput) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO ut (nev, hossz, allomas, ido, vezetes, telepulesid) VALUES (?, ?, ?, ?, ?, ?)",
		in.Nev, in.Hossz, in.Allomas, in.Ido, in.Vezetes, in.TelepulesID)
	if err != nil {
		return 0, fmt.Errorf("inserting trail: %w", err)
	}
	id, _ := result.LastInsertId()
	return id, nil
}

func (s *Store) UpdateTrail(ctx context.Context, id int64, in TrailInput) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE ut SET nev = ?, hossz = ?, allomas = ?, ido = ?, vezetes = ?, telepulesid = ? WHERE id = ?",
		in.Nev, in.Hossz, in.Allomas, in.Ido, in.Vezetes, in.TelepulesID, id)
	if err != nil {
		return fmt.Errorf("updating trail: %w", err)
	}
	return nil
}

func (s *Store) DeleteTrail(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM ut WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting trail: %w", err)
	}
	return nil
}

// --- settlements ---

func (s *Store) ListSettlements(ctx context.Context) ([]models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, nev FROM telepules ORDER BY nev")
	if err != nil {
		return nil, fmt.Errorf("querying settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var t models.Settlement
		if err := rows.Scan(&t.ID, &t.Nev); err != nil {
			return nil, fmt.Errorf("scanning settlement: %w", err)
		}
		settlements = append(settlements, t)
	}
	return settlements, rows.Err()
}
