package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexedwards/argon2id"

	"todocore/internal/models"
)

func TestSeedUsers(t *testing.T) {
	const seedYAML = `
users:
  - email: admin@todo.dev
    password: ChangeMe123!
    full_name: Administrator
    role: admin
  - email: alice@todo.dev
    password: alice-password
    full_name: Alice
  - email: ""
    password: ignored
`
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	store := NewMemoryUserStore()
	ctx := context.Background()
	if err := SeedUsers(ctx, store, path); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, err := store.GetByEmail(ctx, "admin@todo.dev")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("admin role = %s, want admin", admin.Role)
	}
	match, err := argon2id.ComparePasswordAndHash("ChangeMe123!", admin.PasswordHash)
	if err != nil || !match {
		t.Fatalf("seeded hash does not match password (match=%v err=%v)", match, err)
	}

	alice, err := store.GetByEmail(ctx, "alice@todo.dev")
	if err != nil {
		t.Fatalf("alice not seeded: %v", err)
	}
	if alice.Role != models.RoleUser {
		t.Fatalf("default role = %s, want user", alice.Role)
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("seeded %d users, want 2 (blank entry skipped)", len(users))
	}

	// Re-running is a no-op for existing accounts.
	if err := SeedUsers(ctx, store, path); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	users, _ = store.List(ctx)
	if len(users) != 2 {
		t.Fatalf("reseed created duplicates: %d users", len(users))
	}
}

func TestSeedUsersMissingFile(t *testing.T) {
	err := SeedUsers(context.Background(), NewMemoryUserStore(), "/nonexistent/users.yaml")
	if err == nil {
		t.Fatal("seeding from a missing file should fail")
	}
}
