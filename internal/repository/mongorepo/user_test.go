package mongorepo

import (
	"context"
	"errors"
	"testing"

	"github.com/Rasika1975/socialapp/internal/model"
	"github.com/Rasika1975/socialapp/internal/repository"
)

func TestUserCreateAndFind(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	created, err := repo.User.Create(ctx, model.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.User.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "hash" || found.Username != "alice" {
		t.Fatalf("found = %+v, created = %+v", found, created)
	}

	if _, err := repo.User.Create(ctx, model.User{Username: "other", Email: "a@x.com", PasswordHash: "x"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate email: expected ErrDuplicate, got %v", err)
	}
	if _, err := repo.User.FindByEmail(ctx, "nobody@x.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing email: expected ErrNotFound, got %v", err)
	}
}
