package repo

import (
	"database/sql"
	"errors"

	"github.com/mpetrun5/hobbylog/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type HobbyRepo struct {
	DB *sql.DB
}

func NewHobbyRepo(db *sql.DB) *HobbyRepo {
	return &HobbyRepo{DB: db}
}

// ========================
// LIST WITH AGGREGATES
// ========================

// ListWithStats returns every hobby owned by userID, newest first, with
// total time spent and session count recomputed from the sessions table.
// Hobbies without sessions report zero for both.
func (r *HobbyRepo) ListWithStats(userID int) ([]models.HobbyWithStats, error) {
	rows, err := r.DB.Query(`
		SELECT h.id, h.user_id, h.name, h.description, h.category, h.created_at, h.updated_at,
		       COALESCE(SUM(s.duration), 0) AS total_time_spent,
		       COUNT(s.id) AS session_count
		FROM hobbies h
		LEFT JOIN sessions s ON s.hobby_id = h.id
		WHERE h.user_id = ?
		GROUP BY h.id
		ORDER BY h.created_at DESC, h.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hobbies []models.HobbyWithStats
	for rows.Next() {
		var h models.HobbyWithStats
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Name, &h.Description, &h.Category,
			&h.CreatedAt, &h.UpdatedAt,
			&h.TotalTimeSpent, &h.SessionCount,
		); err != nil {
			return nil, err
		}
		hobbies = append(hobbies, h)
	}
	return hobbies, rows.Err()
}

// ========================
// CREATE HOBBY
// ========================

func (r *HobbyRepo) Create(userID int, name string, description, category *string) (*models.Hobby, error) {
	hobby := &models.Hobby{}
	err := r.DB.QueryRow(`
		INSERT INTO hobbies (user_id, name, description, category)
		VALUES (?, ?, ?, ?)
		RETURNING id, user_id, name, description, category, created_at, updated_at
	`, userID, name, description, category).Scan(
		&hobby.ID, &hobby.UserID, &hobby.Name, &hobby.Description, &hobby.Category,
		&hobby.CreatedAt, &hobby.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return hobby, nil
}

// ========================
// GET HOBBY
// ========================

func (r *HobbyRepo) Get(userID, id int) (*models.Hobby, error) {
	hobby := &models.Hobby{}
	err := r.DB.QueryRow(`
		SELECT id, user_id, name, description, category, created_at, updated_at
		FROM hobbies
		WHERE id = ? AND user_id = ?
	`, id, userID).Scan(
		&hobby.ID, &hobby.UserID, &hobby.Name, &hobby.Description, &hobby.Category,
		&hobby.CreatedAt, &hobby.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return hobby, nil
}

// ========================
// UPDATE HOBBY
// ========================

// Update replaces name, description and category and stamps updated_at.
// The WHERE clause carries the owner check, so the check and the mutation
// are a single atomic statement.
func (r *HobbyRepo) Update(userID, id int, name string, description, category *string) (*models.Hobby, error) {
	hobby := &models.Hobby{}
	err := r.DB.QueryRow(`
		UPDATE hobbies
		SET name = ?, description = ?, category = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
		RETURNING id, user_id, name, description, category, created_at, updated_at
	`, name, description, category, id, userID).Scan(
		&hobby.ID, &hobby.UserID, &hobby.Name, &hobby.Description, &hobby.Category,
		&hobby.CreatedAt, &hobby.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return hobby, nil
}

// ========================
// DELETE HOBBY (CASCADES)
// ========================

// Delete removes the hobby and all of its sessions in one transaction so no
// orphan sessions can persist.
func (r *HobbyRepo) Delete(userID, id int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		DELETE FROM sessions
		WHERE hobby_id IN (SELECT id FROM hobbies WHERE id = ? AND user_id = ?)
	`, id, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	res, err := tx.Exec(`DELETE FROM hobbies WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if n == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	return tx.Commit()
}
