package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mpetrun5/hobbylog/internal/repo"
)

func TestSessionHandler_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`INSERT INTO sessions \(hobby_id, duration, notes, date\)`).
		WithArgs(5, 30, "scales", "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hobby_id", "duration", "notes", "date", "created_at",
		}).AddRow(1, 5, 30, "scales", "2024-01-01", now))
	mock.ExpectCommit()

	h := &SessionHandler{Repo: repo.NewSessionRepo(db)}
	rr := httptest.NewRecorder()
	req := withURLParam(authedRequest("POST", "/api/hobbies/5/sessions",
		strings.NewReader(`{"duration":30,"date":"2024-01-01","notes":"scales"}`)), "id", "5")
	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201, body: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Session struct {
			ID       int    `json:"id"`
			HobbyID  int    `json:"hobby_id"`
			Duration int    `json:"duration"`
			Date     string `json:"date"`
		} `json:"session"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Session.ID != 1 || resp.Session.HobbyID != 5 || resp.Session.Duration != 30 {
		t.Errorf("unexpected session: %+v", resp.Session)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSessionHandler_Create_Invalid(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &SessionHandler{Repo: repo.NewSessionRepo(db)}

	cases := map[string]struct {
		body    string
		wantMsg string
	}{
		"missing duration": {
			body:    `{"date":"2024-01-01"}`,
			wantMsg: "duration is required",
		},
		"negative duration": {
			body:    `{"duration":-5,"date":"2024-01-01"}`,
			wantMsg: "duration must be greater than 0",
		},
		"missing date": {
			body:    `{"duration":30}`,
			wantMsg: "date is required",
		},
		"malformed date": {
			body:    `{"duration":30,"date":"Jan 1 2024"}`,
			wantMsg: "date must be a date in YYYY-MM-DD form",
		},
	}
	for name, tc := range cases {
		rr := httptest.NewRecorder()
		req := withURLParam(authedRequest("POST", "/api/hobbies/5/sessions",
			strings.NewReader(tc.body)), "id", "5")
		h.Create(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want 400", name, rr.Code)
			continue
		}
		var resp map[string]string
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Errorf("%s: decode response: %v", name, err)
			continue
		}
		if resp["error"] != tc.wantMsg {
			t.Errorf("%s: error message got %q, want %q", name, resp["error"], tc.wantMsg)
		}
	}
}

func TestSessionHandler_Create_HobbyNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(9, 1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	h := &SessionHandler{Repo: repo.NewSessionRepo(db)}
	rr := httptest.NewRecorder()
	req := withURLParam(authedRequest("POST", "/api/hobbies/9/sessions",
		strings.NewReader(`{"duration":30,"date":"2024-01-01"}`)), "id", "9")
	h.Create(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSessionHandler_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(`FROM sessions WHERE hobby_id = \?`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "hobby_id", "duration", "notes", "date", "created_at",
		}).
			AddRow(2, 5, 45, nil, "2024-01-02", now).
			AddRow(1, 5, 30, "scales", "2024-01-01", now))

	h := &SessionHandler{Repo: repo.NewSessionRepo(db)}
	rr := httptest.NewRecorder()
	req := withURLParam(authedRequest("GET", "/api/hobbies/5/sessions", nil), "id", "5")
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200, body: %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Sessions []struct {
			ID       int    `json:"id"`
			Duration int    `json:"duration"`
			Date     string `json:"date"`
		} `json:"sessions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(resp.Sessions))
	}
	if resp.Sessions[0].Date != "2024-01-02" {
		t.Errorf("sessions out of order: %+v", resp.Sessions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSessionHandler_List_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id FROM hobbies WHERE id = \? AND user_id = \?`).
		WithArgs(9, 1).
		WillReturnError(sql.ErrNoRows)

	h := &SessionHandler{Repo: repo.NewSessionRepo(db)}
	rr := httptest.NewRecorder()
	req := withURLParam(authedRequest("GET", "/api/hobbies/9/sessions", nil), "id", "9")
	h.List(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}
