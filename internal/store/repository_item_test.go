package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/Deadmanswitch/encryption/internal/logger"
	"github.com/Deadmanswitch/encryption/models"
)

func newTestItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &itemRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	item := models.ProtectedItem{
		ID:          "0198f2c0-0000-7000-8000-000000000001",
		UserID:      1,
		Name:        "backup",
		ContentType: "application/octet-stream",
		Salt:        "c2FsdA==",
		Fingerprint: "ZnA=",
		Size:        10240,
		ChunkCount:  3,
	}

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery("INSERT INTO items").
		WithArgs(item.ID, item.UserID, item.Name, item.ContentType, item.Salt, item.Fingerprint, item.Size, item.ChunkCount).
		WillReturnRows(rows)

	created, err := repo.CreateItem(context.Background(), item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}
}

func TestCreateItem_AlreadyExists(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO items").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateItem(context.Background(), models.ProtectedItem{ID: "dup", UserID: 1})
	if !errors.Is(err, ErrItemAlreadyExists) {
		t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(1), "missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "content_type", "salt", "fingerprint", "size", "chunk_count", "created_at"}))

	_, err := repo.GetItem(context.Background(), 1, "missing")
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGetItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "name", "content_type", "salt", "fingerprint", "size", "chunk_count", "created_at"}).
		AddRow("item-1", int64(1), "backup", "text/plain", "c2FsdA==", "ZnA=", int64(42), 1, time.Now())

	mock.ExpectQuery("SELECT id").
		WithArgs(int64(1), "item-1").
		WillReturnRows(rows)

	item, err := repo.GetItem(context.Background(), 1, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ChunkCount != 1 || item.Salt != "c2FsdA==" {
		t.Errorf("unexpected item returned: %+v", item)
	}
}

func TestListItems_FilterApplied(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"id", "user_id", "name", "content_type", "salt", "fingerprint", "size", "chunk_count", "created_at"}).
		AddRow("item-1", int64(1), "notes", "text/plain", "c2FsdA==", "ZnA=", int64(11), 1, time.Now())

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs(int64(1), "text/plain").
		WillReturnRows(rows)

	items, err := repo.ListItems(context.Background(), 1, models.ItemListFilter{ContentType: "text/plain"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "item-1" {
		t.Errorf("unexpected result: %+v", items)
	}
}

func TestSaveChunks_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	chunks := []models.CipherChunk{
		{ItemID: "item-1", Seq: 0, Data: "Zmlyc3Q="},
		{ItemID: "item-1", Seq: 1, Data: "c2Vjb25k"},
	}

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO chunks")
	mock.ExpectQuery("INSERT INTO chunks").
		WithArgs(int64(1), "item-1", 0, "Zmlyc3Q=").
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow("item-1"))
	mock.ExpectQuery("INSERT INTO chunks").
		WithArgs(int64(1), "item-1", 1, "c2Vjb25k").
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow("item-1"))
	mock.ExpectCommit()

	if err := repo.SaveChunks(context.Background(), 1, chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveChunks_ForeignItemRejected(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO chunks")
	// Ownership join matches no row for a foreign item.
	mock.ExpectQuery("INSERT INTO chunks").
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}))
	mock.ExpectRollback()

	err := repo.SaveChunks(context.Background(), 2, []models.CipherChunk{{ItemID: "item-1", Seq: 0, Data: "eA=="}})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSaveChunks_DuplicateSeq(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO chunks")
	mock.ExpectQuery("INSERT INTO chunks").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	err := repo.SaveChunks(context.Background(), 1, []models.CipherChunk{{ItemID: "item-1", Seq: 0, Data: "eA=="}})
	if !errors.Is(err, ErrChunkAlreadyExists) {
		t.Fatalf("expected ErrChunkAlreadyExists, got %v", err)
	}
}

func TestSaveChunks_EmptyBatchIsNoop(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	if err := repo.SaveChunks(context.Background(), 1, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no queries should run for an empty batch: %v", err)
	}
}

func TestGetChunks_OrderedBySeq(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"item_id", "seq", "data"}).
		AddRow("item-1", 0, "Zmlyc3Q=").
		AddRow("item-1", 1, "c2Vjb25k")

	mock.ExpectQuery("SELECT c.item_id").
		WithArgs(int64(1), "item-1").
		WillReturnRows(rows)

	chunks, err := repo.GetChunks(context.Background(), 1, "item-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Seq != 0 || chunks[1].Seq != 1 {
		t.Errorf("chunks out of order: %+v", chunks)
	}
}
