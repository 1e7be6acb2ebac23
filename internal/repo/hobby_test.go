package repo

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var hobbyRows = []string{"id", "user_id", "name", "description", "category", "created_at", "updated_at"}

func statsRows() *sqlmock.Rows {
	return sqlmock.NewRows(append(hobbyRows, "total_time_spent", "session_count"))
}

func TestHobbyRepo_ListWithStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`LEFT JOIN sessions s ON s\.hobby_id = h\.id WHERE h\.user_id = \?`).
		WithArgs(1).
		WillReturnRows(statsRows().
			AddRow(2, 1, "Guitar", "fingerstyle", "music", now, now, 75, 2).
			AddRow(1, 1, "Chess", nil, nil, now, now, 0, 0))

	repo := NewHobbyRepo(db)
	hobbies, err := repo.ListWithStats(1)
	if err != nil {
		t.Fatalf("ListWithStats: %v", err)
	}
	if len(hobbies) != 2 {
		t.Fatalf("expected 2 hobbies, got %d", len(hobbies))
	}
	if hobbies[0].Name != "Guitar" || hobbies[0].TotalTimeSpent != 75 || hobbies[0].SessionCount != 2 {
		t.Errorf("unexpected first hobby: %+v", hobbies[0])
	}
	// A hobby without sessions reports zero aggregates, not NULLs.
	if hobbies[1].Name != "Chess" || hobbies[1].TotalTimeSpent != 0 || hobbies[1].SessionCount != 0 {
		t.Errorf("unexpected second hobby: %+v", hobbies[1])
	}
	if hobbies[1].Description != nil || hobbies[1].Category != nil {
		t.Errorf("expected nil description/category, got: %+v", hobbies[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHobbyRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO hobbies \(user_id, name, description, category\)`).
		WithArgs(1, "Guitar", nil, "music").
		WillReturnRows(sqlmock.NewRows(hobbyRows).
			AddRow(5, 1, "Guitar", nil, "music", now, now))

	category := "music"
	repo := NewHobbyRepo(db)
	hobby, err := repo.Create(1, "Guitar", nil, &category)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if hobby.ID != 5 || hobby.Name != "Guitar" || hobby.Description != nil {
		t.Errorf("unexpected hobby: %+v", hobby)
	}
	if hobby.Category == nil || *hobby.Category != "music" {
		t.Errorf("unexpected category: %+v", hobby.Category)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHobbyRepo_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Owned by another user or absent: same empty result, same error.
	mock.ExpectQuery(`FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(7, 2).
		WillReturnError(sql.ErrNoRows)

	repo := NewHobbyRepo(db)
	_, err = repo.Get(2, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHobbyRepo_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE hobbies SET name = \?, description = \?, category = \?, updated_at = CURRENT_TIMESTAMP WHERE id = \? AND user_id = \?`).
		WithArgs("Classical Guitar", "nylon strings", nil, 5, 1).
		WillReturnRows(sqlmock.NewRows(hobbyRows).
			AddRow(5, 1, "Classical Guitar", "nylon strings", nil, now, now))

	desc := "nylon strings"
	repo := NewHobbyRepo(db)
	hobby, err := repo.Update(1, 5, "Classical Guitar", &desc, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if hobby.Name != "Classical Guitar" || hobby.Description == nil || *hobby.Description != "nylon strings" {
		t.Errorf("unexpected hobby: %+v", hobby)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHobbyRepo_Update_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE hobbies SET`).
		WithArgs("Guitar", nil, nil, 5, 99).
		WillReturnError(sql.ErrNoRows)

	repo := NewHobbyRepo(db)
	_, err = repo.Update(99, 5, "Guitar", nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHobbyRepo_Delete_Cascades(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM sessions WHERE hobby_id IN \(SELECT id FROM hobbies WHERE id = \? AND user_id = \?\)`).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(5, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewHobbyRepo(db)
	if err := repo.Delete(1, 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestHobbyRepo_Delete_NotFoundRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM sessions WHERE hobby_id IN`).
		WithArgs(5, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(5, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewHobbyRepo(db)
	err = repo.Delete(99, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
