package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"careerlaunch-backend/internal/document"
)

func TestPGRepoCreateATSResumeNullsMissingResumeID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	row := ATSResume{
		ID:             "ats-1",
		JobDescription: "Backend engineer",
		OptimizedData:  document.Document{"ats_score": 80},
		CreatedAt:      time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO ats_optimized_resumes").
		WithArgs(row.ID, nil, row.JobDescription, sqlmock.AnyArg(), row.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if _, err := repo.CreateATSResume(context.Background(), row); err != nil {
		t.Fatalf("CreateATSResume: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreatePortfolioWrapsFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO portfolios").WillReturnError(errors.New("relation does not exist"))

	_, err = repo.CreatePortfolio(context.Background(), Portfolio{ID: "p-1"})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
