package interviews

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	iv := Interview{
		MockID:          "mock-1",
		JobPosition:     "Backend Engineer",
		JobDesc:         "Go services",
		JobExperience:   "5",
		QuestionsStatus: QuestionsQueued,
		Status:          StatusPending,
		CreatedBy:       "alex@example.com",
		CreatedAt:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO interviews").
		WithArgs(
			iv.MockID,
			iv.JobPosition,
			iv.JobDesc,
			iv.JobExperience,
			sqlmock.AnyArg(), // questions JSON
			string(QuestionsQueued),
			string(StatusPending),
			iv.CreatedBy,
			iv.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), iv); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByMockIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT .* FROM interviews").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"mock_id", "job_position", "job_desc", "job_experience", "questions",
			"questions_status", "generation_error", "status", "score", "created_by",
			"created_at", "completed_at",
		}))

	if _, err := repo.GetByMockID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoGetByMockIDScansQuestions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"mock_id", "job_position", "job_desc", "job_experience", "questions",
		"questions_status", "generation_error", "status", "score", "created_by",
		"created_at", "completed_at",
	}).AddRow(
		"mock-1", "Backend Engineer", "Go services", "5",
		[]byte(`[{"question":"Q1","answer":"A1"}]`),
		"ready", nil, "Pending", nil, "alex@example.com", createdAt, nil,
	)

	mock.ExpectQuery("SELECT .* FROM interviews").
		WithArgs("mock-1").
		WillReturnRows(rows)

	iv, err := repo.GetByMockID(context.Background(), "mock-1")
	if err != nil {
		t.Fatalf("GetByMockID: %v", err)
	}
	if len(iv.Questions) != 1 || iv.Questions[0].Question != "Q1" {
		t.Errorf("questions = %+v", iv.Questions)
	}
	if iv.QuestionsStatus != QuestionsReady {
		t.Errorf("questionsStatus = %s", iv.QuestionsStatus)
	}
	if iv.Score != nil || iv.CompletedAt != nil {
		t.Errorf("score/completedAt should be nil for pending interview")
	}
}

func TestPGRepoCompleteGuardedTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	completedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE interviews").
		WithArgs(string(StatusCompleted), 7.2, completedAt, "mock-1", string(StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Complete(context.Background(), "mock-1", 7.2, completedAt)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !ok {
		t.Error("expected transition")
	}

	// A second attempt matches no Pending row.
	mock.ExpectExec("UPDATE interviews").
		WithArgs(string(StatusCompleted), 9.9, completedAt, "mock-1", string(StatusPending)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err = repo.Complete(context.Background(), "mock-1", 9.9, completedAt)
	if err != nil {
		t.Fatalf("Complete repeat: %v", err)
	}
	if ok {
		t.Error("repeat transition must not match a row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
