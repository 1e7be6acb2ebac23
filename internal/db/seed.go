package db

import (
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultUsername is the account seeded on first start.
	DefaultUsername = "admin"
	defaultPassword = "hobby123"
)

// EnsureDefaultUser creates the default user if no user with that name
// exists yet. Users are immutable afterwards: nothing in the system updates
// or deletes them.
func EnsureDefaultUser(db *sql.DB) error {
	var id int
	err := db.QueryRow(`SELECT id FROM users WHERE username = ?`, DefaultUsername).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`,
		DefaultUsername, string(hash),
	)
	if err != nil {
		// Two processes racing through a first start both reach the insert;
		// the loser hits the UNIQUE constraint, which is benign.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil
		}
		return err
	}

	slog.Info("seeded default user", "username", DefaultUsername)
	return nil
}
