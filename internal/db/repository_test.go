package db_test

import (
	"context"
	"errors"
	"testing"

	"quizboard/internal/db"
	"quizboard/internal/testutil"
)

func TestRepositoryCreateFindSave(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	users := db.NewRepository[db.User](conn)
	ctx := context.Background()

	ann := db.User{Name: "Ann"}
	if err := users.Create(ctx, &ann); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if ann.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
	if err := users.CreateBatch(ctx, nil); err != nil {
		t.Fatalf("expected empty batch to be a no-op, got %v", err)
	}

	ann.Name = "Anna"
	if err := users.Save(ctx, &ann); err != nil {
		t.Fatalf("save user: %v", err)
	}
	found, err := users.FindByID(ctx, ann.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if found.Name != "Anna" {
		t.Fatalf("expected Anna, got %q", found.Name)
	}

	if _, err := users.FindByID(ctx, ann.ID+100); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	all, err := users.Find(ctx, "id asc")
	if err != nil {
		t.Fatalf("find users: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 user, got %d", len(all))
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if db.IsUniqueViolation(nil) {
		t.Fatalf("expected nil error to be ignored")
	}
	if db.IsUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
	if !db.IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: questions.game_id, questions.position")) {
		t.Fatalf("expected sqlite unique error to be recognised")
	}
}
