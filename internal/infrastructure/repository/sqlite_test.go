package repository

import (
	"path/filepath"
	"testing"

	"terradash/internal/infrastructure/database"
)

func TestSQLiteRepository(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "terradash.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	testRepository(t, repo)

	t.Run("replace with empty collection clears the table", func(t *testing.T) {
		if err := repo.ReplaceOrders(nil); err != nil {
			t.Fatalf("ReplaceOrders(nil): %v", err)
		}
		orders, err := repo.Orders()
		if err != nil {
			t.Fatalf("Orders(): %v", err)
		}
		if len(orders) != 0 {
			t.Errorf("expected empty table, got %d rows", len(orders))
		}
	})
}
