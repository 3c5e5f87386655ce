package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore()

	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestSQLiteStore_MigrationVersion(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	if err != nil {
		t.Fatalf("failed to get migration version: %v", err)
	}
	if version < 1 {
		t.Errorf("expected migration version >= 1, got %d", version)
	}
}

func TestSQLiteStore_SaveAndGetSnapshot(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snap := &Snapshot{
		Source:  "queries/report.sql",
		Dialect: "mysql",
		Tables:  []string{"select::null::orders", "select::null::users"},
		Columns: []string{"select::orders::id", "select::users::name"},
	}

	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}
	if snap.ID == "" {
		t.Fatal("expected SaveSnapshot to assign an ID")
	}
	if snap.CreatedAt.IsZero() {
		t.Fatal("expected SaveSnapshot to assign CreatedAt")
	}

	got, err := store.GetSnapshot(ctx, snap.ID)
	if err != nil {
		t.Fatalf("failed to get snapshot: %v", err)
	}
	if got.Source != snap.Source || got.Dialect != snap.Dialect {
		t.Errorf("snapshot metadata mismatch: got %+v", got)
	}
	if len(got.Tables) != 2 || got.Tables[0] != "select::null::orders" {
		t.Errorf("unexpected tables: %v", got.Tables)
	}
	if len(got.Columns) != 2 || got.Columns[1] != "select::users::name" {
		t.Errorf("unexpected columns: %v", got.Columns)
	}
}

func TestSQLiteStore_GetSnapshotNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetSnapshot(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_ListSnapshotsNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	older := &Snapshot{
		Source:    "a.sql",
		Dialect:   "mysql",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Tables:    []string{"select::null::a"},
	}
	newer := &Snapshot{
		Source:    "b.sql",
		Dialect:   "postgres",
		CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Tables:    []string{"select::null::b"},
	}
	for _, snap := range []*Snapshot{older, newer} {
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}
	}

	snaps, err := store.ListSnapshots(ctx, 0)
	if err != nil {
		t.Fatalf("failed to list snapshots: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	if snaps[0].Source != "b.sql" || snaps[1].Source != "a.sql" {
		t.Errorf("expected newest first, got %s then %s", snaps[0].Source, snaps[1].Source)
	}
	if len(snaps[0].Tables) != 1 {
		t.Errorf("expected entries loaded for listed snapshots, got %v", snaps[0].Tables)
	}
}

func TestSQLiteStore_ListSnapshotsLimit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		snap := &Snapshot{Source: "x.sql", Dialect: "mysql"}
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}
	}

	snaps, err := store.ListSnapshots(ctx, 3)
	if err != nil {
		t.Fatalf("failed to list snapshots: %v", err)
	}
	if len(snaps) != 3 {
		t.Errorf("expected 3 snapshots with limit, got %d", len(snaps))
	}
}

func TestSQLiteStore_DeleteSnapshot(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	snap := &Snapshot{Source: "x.sql", Dialect: "mysql"}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("failed to save snapshot: %v", err)
	}

	if err := store.DeleteSnapshot(ctx, snap.ID); err != nil {
		t.Fatalf("failed to delete snapshot: %v", err)
	}
	if _, err := store.GetSnapshot(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := store.DeleteSnapshot(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()
	ctx := context.Background()

	if err := store.SaveSnapshot(ctx, &Snapshot{}); err == nil {
		t.Error("expected error saving to unopened store")
	}
	if _, err := store.GetSnapshot(ctx, "x"); err == nil {
		t.Error("expected error reading from unopened store")
	}
	if _, err := store.ListSnapshots(ctx, 0); err == nil {
		t.Error("expected error listing from unopened store")
	}
}

func TestSQLiteStore_SaveSnapshotRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &SQLiteStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO snapshots").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	saveErr := store.SaveSnapshot(context.Background(), &Snapshot{Source: "x.sql", Dialect: "mysql"})
	if saveErr == nil {
		t.Fatal("expected save error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestSQLiteStore_ListSnapshotsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &SQLiteStore{db: db}

	mock.ExpectQuery("SELECT id, source, dialect, created_at FROM snapshots").
		WillReturnError(errors.New("io error"))

	if _, err := store.ListSnapshots(context.Background(), 0); err == nil {
		t.Fatal("expected list error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
