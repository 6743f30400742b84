package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"finance-assistant/internal/models"
	"finance-assistant/pkg/config"
	"finance-assistant/pkg/sqlite"

	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func daysAgo(d int) string {
	return models.FormatTimestamp(fixedNow.Add(-time.Duration(d) * 24 * time.Hour))
}

func newSQLiteStore(t *testing.T) *SQLiteExpenseRepository {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "expenses.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteExpenseRepository(db, fixedClock, zap.NewNop())
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return repo
}

func stores(t *testing.T) map[string]ExpenseStore {
	return map[string]ExpenseStore{
		"memory": NewMemoryExpenseRepository(fixedClock),
		"sqlite": newSQLiteStore(t),
	}
}

func seed(t *testing.T, store ExpenseStore) {
	t.Helper()
	records := []models.Expense{
		{UserID: "alice", Amount: 500, Category: "Food", Description: "lunch", Date: daysAgo(1)},
		{UserID: "alice", Amount: 200, Category: "Transport", Description: "cab", Date: daysAgo(10)},
		{UserID: "alice", Amount: 1200, Category: "Bills", Description: "electricity", Date: daysAgo(40)},
		{UserID: "bob", Amount: 99.5, Category: "Health", Description: "pharmacy", Date: daysAgo(2)},
	}
	for i := range records {
		if err := store.Insert(context.Background(), &records[i]); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func descriptions(expenses []*models.Expense) []string {
	out := make([]string, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, e.Description)
	}
	sort.Strings(out)
	return out
}

func TestExpenseStore_Query(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		window int
		want   []string
	}{
		{"all records", "alice", 0, []string{"cab", "electricity", "lunch"}},
		{"last week", "alice", 7, []string{"lunch"}},
		{"last month", "alice", 30, []string{"cab", "lunch"}},
		{"negative window means all", "alice", -3, []string{"cab", "electricity", "lunch"}},
		{"other user", "bob", 0, []string{"pharmacy"}},
		{"unknown user", "carol", 0, []string{}},
	}

	for storeName, store := range stores(t) {
		seed(t, store)
		for _, tt := range tests {
			t.Run(storeName+"/"+tt.name, func(t *testing.T) {
				got, err := store.Query(context.Background(), tt.user, tt.window)
				if err != nil {
					t.Fatalf("query: %v", err)
				}
				gotDesc := descriptions(got)
				if len(gotDesc) != len(tt.want) {
					t.Fatalf("got %v, want %v", gotDesc, tt.want)
				}
				for i := range gotDesc {
					if gotDesc[i] != tt.want[i] {
						t.Errorf("got %v, want %v", gotDesc, tt.want)
					}
				}
			})
		}
	}
}

func TestExpenseStore_RoundTripFields(t *testing.T) {
	for storeName, store := range stores(t) {
		t.Run(storeName, func(t *testing.T) {
			in := models.Expense{UserID: "alice", Amount: 12.75, Category: "Shopping", Description: "socks", Date: daysAgo(0)}
			if err := store.Insert(context.Background(), &in); err != nil {
				t.Fatalf("insert: %v", err)
			}

			got, err := store.Query(context.Background(), "alice", 1)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 record, got %d", len(got))
			}
			if *got[0] != in {
				t.Errorf("got %+v, want %+v", *got[0], in)
			}
		})
	}
}

func TestExpenseStore_DeleteAll(t *testing.T) {
	for storeName, store := range stores(t) {
		t.Run(storeName, func(t *testing.T) {
			ctx := context.Background()

			deleted, err := store.DeleteAll(ctx, "alice")
			if err != nil || deleted != 0 {
				t.Fatalf("delete on empty store = (%d, %v), want (0, nil)", deleted, err)
			}

			seed(t, store)

			deleted, err = store.DeleteAll(ctx, "alice")
			if err != nil {
				t.Fatalf("delete: %v", err)
			}
			if deleted != 3 {
				t.Errorf("expected 3 deleted, got %d", deleted)
			}

			deleted, err = store.DeleteAll(ctx, "alice")
			if err != nil || deleted != 0 {
				t.Errorf("second delete = (%d, %v), want (0, nil)", deleted, err)
			}

			remaining, err := store.Query(ctx, "bob", 0)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if len(remaining) != 1 {
				t.Errorf("expected bob's record to survive, got %d records", len(remaining))
			}
		})
	}
}

func TestMemoryExpenseRepository_ReturnsCopies(t *testing.T) {
	store := NewMemoryExpenseRepository(fixedClock)
	seed(t, store)

	got, _ := store.Query(context.Background(), "bob", 0)
	got[0].Amount = 0

	again, _ := store.Query(context.Background(), "bob", 0)
	if again[0].Amount != 99.5 {
		t.Errorf("mutating a query result changed the store: %v", again[0].Amount)
	}
}

func TestSQLiteExpenseRepository_ClosedDatabase(t *testing.T) {
	store := newSQLiteStore(t)
	store.db.Close()

	_, err := store.Query(context.Background(), "alice", 0)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
	err = store.Insert(context.Background(), &models.Expense{UserID: "alice"})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestNewExpenseStore(t *testing.T) {
	ctx := context.Background()

	store, cleanup, err := NewExpenseStore(ctx, &config.StoreConfig{Driver: config.DriverMemory}, zap.NewNop())
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	defer cleanup()
	if _, ok := store.(*MemoryExpenseRepository); !ok {
		t.Errorf("expected memory repository, got %T", store)
	}

	sqliteCfg := &config.StoreConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "app.db")},
	}
	store, cleanup, err = NewExpenseStore(ctx, sqliteCfg, zap.NewNop())
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	defer cleanup()
	if _, ok := store.(*SQLiteExpenseRepository); !ok {
		t.Errorf("expected sqlite repository, got %T", store)
	}

	if _, _, err := NewExpenseStore(ctx, &config.StoreConfig{Driver: "redis"}, zap.NewNop()); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
