package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/moodmix/internal/shared"
	tu "github.com/desertthunder/moodmix/internal/testing"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	hashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *SQLUserStore {
	t.Helper()

	db, err := shared.OpenMigrated(shared.DatabaseConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSQLUserStore(db)
}

func setupFileStore(t *testing.T) *FileUserStore {
	t.Helper()

	store, err := OpenFileUserStore(filepath.Join(t.TempDir(), "users.json"))
	if err != nil {
		t.Fatalf("failed to open file store: %v", err)
	}
	return store
}

// testUserStore runs the shared contract against any [UserStore].
func testUserStore(t *testing.T, newStore func(t *testing.T) UserStore) {
	ctx := context.Background()

	t.Run("Register", func(t *testing.T) {
		store := newStore(t)

		u, err := store.Register(ctx, "alice", "s3cret")
		if err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		if u.Username != "alice" {
			t.Errorf("expected username alice, got %s", u.Username)
		}
		if u.PasswordHash == "" || u.PasswordHash == "s3cret" {
			t.Error("password must be stored hashed")
		}
	})

	t.Run("Register duplicate keeps first hash", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.Register(ctx, "alice", "first"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}
		before, err := store.Get(ctx, "alice")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}

		_, err = store.Register(ctx, "alice", "second")
		if !errors.Is(err, shared.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}

		after, err := store.Get(ctx, "alice")
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if after.PasswordHash != before.PasswordHash {
			t.Error("stored hash changed after conflicting registration")
		}

		if _, err := store.Authenticate(ctx, "alice", "first"); err != nil {
			t.Errorf("original password should still work: %v", err)
		}
		if _, err := store.Authenticate(ctx, "alice", "second"); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("second password must not work, got %v", err)
		}
	})

	t.Run("Register rejects blank input", func(t *testing.T) {
		store := newStore(t)

		tc := []struct{ username, password string }{
			{"", "pw"},
			{"   ", "pw"},
			{"bob", ""},
			{"bob", strings.Repeat("x", 80)},
		}
		for _, tt := range tc {
			if _, err := store.Register(ctx, tt.username, tt.password); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("Register(%q, %d bytes) = %v, want ErrInvalidInput", tt.username, len(tt.password), err)
			}
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.Register(ctx, "alice", "s3cret"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		u, err := store.Authenticate(ctx, "alice", "s3cret")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if u.Username != "alice" {
			t.Errorf("expected alice, got %s", u.Username)
		}

		if _, err := store.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("wrong password: expected ErrUnauthorized, got %v", err)
		}
		if _, err := store.Authenticate(ctx, "nobody", "s3cret"); !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("missing user: expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("Get missing", func(t *testing.T) {
		store := newStore(t)
		if _, err := store.Get(ctx, "ghost"); !errors.Is(err, shared.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("Concurrent registration of one name", func(t *testing.T) {
		store := newStore(t)

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Register(ctx, "racer", "pw")
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		ok := 0
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case !errors.Is(err, shared.ErrConflict):
				t.Errorf("unexpected error: %v", err)
			}
		}
		if ok != 1 {
			t.Errorf("expected exactly one successful registration, got %d", ok)
		}
	})
}

func TestFileUserStore(t *testing.T) {
	testUserStore(t, func(t *testing.T) UserStore { return setupFileStore(t) })

	t.Run("creates empty document", func(t *testing.T) {
		store := setupFileStore(t)
		tu.AssertFileExists(t, store.Path())

		if got := strings.TrimSpace(tu.MustReadFile(t, store.Path())); got != "{}" {
			t.Errorf("expected empty object, got %q", got)
		}
	})

	t.Run("document layout", func(t *testing.T) {
		store := setupFileStore(t)
		if _, err := store.Register(context.Background(), "alice", "pw"); err != nil {
			t.Fatalf("failed to register: %v", err)
		}

		var doc map[string]map[string]string
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, store.Path())), &doc); err != nil {
			t.Fatalf("users file is not valid JSON: %v", err)
		}
		if !strings.HasPrefix(doc["alice"]["password"], "$2") {
			t.Errorf("expected bcrypt hash under alice.password, got %v", doc)
		}
	})

	t.Run("persists across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		first, err := OpenFileUserStore(path)
		if err != nil {
			t.Fatalf("open failed: %v", err)
		}
		if _, err := first.Register(context.Background(), "alice", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		second, err := OpenFileUserStore(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		if _, err := second.Authenticate(context.Background(), "alice", "pw"); err != nil {
			t.Errorf("expected user to survive reopen: %v", err)
		}
	})

	t.Run("corrupt document fails open", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.json")
		if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if _, err := OpenFileUserStore(path); err == nil {
			t.Error("expected error for corrupt users file")
		}
	})

	t.Run("missing directory fails open", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "users.json")
		if _, err := OpenFileUserStore(path); err == nil {
			t.Error("expected error when directory does not exist")
		}
	})
}

func TestSQLUserStore(t *testing.T) {
	testUserStore(t, func(t *testing.T) UserStore { return setupTestDB(t) })

	t.Run("records created_at", func(t *testing.T) {
		store := setupTestDB(t)
		if _, err := store.Register(context.Background(), "alice", "pw"); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		u, err := store.Get(context.Background(), "alice")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if u.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})
}
