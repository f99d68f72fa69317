package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"tanosveny/crypto"
	"tanosveny/models"
)

// Default admin credentials, kept for compatibility with existing
// deployments. A bootstrap convenience, not a security control.
const (
	seedAdminName     = "Admin"
	seedAdminEmail    = "admin@local"
	seedAdminPassword = "Admin123!"
)

// SeedAdmin inserts the well-known admin account if no user with its
// email exists. Running it again is a no-op.
func (s *Store) SeedAdmin(ctx context.Context) error {
	_, err := s.GetUserByEmail(ctx, seedAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := crypto.HashPassword(seedAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	if _, err := s.CreateUser(ctx, seedAdminName, seedAdminEmail, hash, models.RoleAdmin); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	log.Warn().Str("email", seedAdminEmail).Msg("seeded default admin user with the built-in password")
	return nil
}
