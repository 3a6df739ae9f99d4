package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/models"
)

func newTestOutboxRepo(t *testing.T) (*outboxRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &outboxRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestOutboxEnqueue_Transactional(t *testing.T) {
	repo, mock, db := newTestOutboxRepo(t)
	defer db.Close()

	chunks := []models.CipherChunk{
		{ItemID: "item-1", Seq: 0, Data: "Zmlyc3Q="},
		{ItemID: "item-1", Seq: 1, Data: "c2Vjb25k"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox").
		WithArgs("item-1", 0, "Zmlyc3Q=").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO outbox").
		WithArgs("item-1", 1, "c2Vjb25k").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := repo.Enqueue(context.Background(), chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestOutboxEnqueue_RollbackOnFailure(t *testing.T) {
	repo, mock, db := newTestOutboxRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Enqueue(context.Background(), []models.CipherChunk{{ItemID: "item-1", Seq: 0, Data: "eA=="}})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func TestOutboxEnqueue_EmptyIsNoop(t *testing.T) {
	repo, mock, db := newTestOutboxRepo(t)
	defer db.Close()

	if err := repo.Enqueue(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries should run for an empty batch: %v", err)
	}
}

func TestOutboxPending(t *testing.T) {
	repo, mock, db := newTestOutboxRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"id", "item_id", "seq", "data", "created_at"}).
		AddRow(int64(1), "item-1", 0, "Zmlyc3Q=", now).
		AddRow(int64(2), "item-1", 1, "c2Vjb25k", now)

	mock.ExpectQuery("SELECT id, item_id").
		WithArgs(10).
		WillReturnRows(rows)

	pending, err := repo.Pending(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending chunks, got %d", len(pending))
	}
	if pending[0].ID != 1 || pending[1].Seq != 1 {
		t.Errorf("unexpected pending rows: %+v", pending)
	}
}

func TestOutboxMarkUploaded(t *testing.T) {
	repo, mock, db := newTestOutboxRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE outbox").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE outbox").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.MarkUploaded(context.Background(), []int64{1, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
