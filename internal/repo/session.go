package repo

import (
	"database/sql"
	"errors"

	"github.com/mpetrun5/hobbylog/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type SessionRepo struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

// ========================
// LIST SESSIONS FOR HOBBY
// ========================

// ListForHobby returns the sessions of a hobby, most recent date first and
// most recently logged first within a date. The hobby must be owned by
// userID; otherwise ErrNotFound, same as if it did not exist.
func (r *SessionRepo) ListForHobby(userID, hobbyID int) ([]models.Session, error) {
	var owned int
	err := r.DB.QueryRow(`SELECT id FROM hobbies WHERE id = ? AND user_id = ?`, hobbyID, userID).
		Scan(&owned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(`
		SELECT id, hobby_id, duration, notes, date, created_at
		FROM sessions
		WHERE hobby_id = ?
		ORDER BY date DESC, created_at DESC, id DESC
	`, hobbyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.HobbyID, &s.Duration, &s.Notes, &s.Date, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ========================
// CREATE SESSION
// ========================

// Create logs a session against a hobby. The owner check and the insert run
// in one transaction so a hobby deleted in between cannot leave an orphan.
func (r *SessionRepo) Create(userID, hobbyID, duration int, date string, notes *string) (*models.Session, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}

	var owned int
	err = tx.QueryRow(`SELECT id FROM hobbies WHERE id = ? AND user_id = ?`, hobbyID, userID).
		Scan(&owned)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return nil, ErrNotFound
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	session := &models.Session{}
	err = tx.QueryRow(`
		INSERT INTO sessions (hobby_id, duration, notes, date)
		VALUES (?, ?, ?, ?)
		RETURNING id, hobby_id, duration, notes, date, created_at
	`, hobbyID, duration, notes, date).Scan(
		&session.ID, &session.HobbyID, &session.Duration, &session.Notes,
		&session.Date, &session.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return session, nil
}
