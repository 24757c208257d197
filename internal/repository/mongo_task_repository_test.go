package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TWRT/task-king/internal/models"
)

// newMongoRepo connects to TEST_MONGO_URI and returns a repository over a
// throwaway database, skipping the test when no server is configured.
func newMongoRepo(t *testing.T) *MongoTaskRepository {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Fatalf("ConnectMongo: %v", err)
	}
	db := client.Database("taskking_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		db.Drop(ctx)
		client.Disconnect(ctx)
	})
	return NewMongoTaskRepository(db)
}

func TestMongoTaskLifecycle(t *testing.T) {
	repo := newMongoRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.TaskFields{Title: strPtr("Call mom")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Priority != models.PriorityLow || created.Completed || created.Description != "" {
		t.Fatalf("defaults not applied: %+v", created)
	}

	updated, err := repo.UpdateByID(ctx, created.ID, models.TaskFields{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	want := created
	want.Completed = true
	if updated != want {
		t.Fatalf("updated = %+v, want %+v", updated, want)
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != want {
		t.Fatalf("List = %+v", tasks)
	}

	if err := repo.DeleteByID(ctx, created.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := repo.DeleteByID(ctx, created.ID); err != nil {
		t.Fatalf("second DeleteByID: %v", err)
	}
	tasks, _ = repo.List(ctx)
	if len(tasks) != 0 {
		t.Fatalf("List after delete = %+v", tasks)
	}
}

func TestMongoUpdateErrors(t *testing.T) {
	repo := newMongoRepo(t)
	ctx := context.Background()

	_, err := repo.UpdateByID(ctx, primitive.NewObjectID().Hex(), models.TaskFields{Completed: boolPtr(true)})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("err = %v, want ErrTaskNotFound", err)
	}

	_, err = repo.UpdateByID(ctx, "zzz", models.TaskFields{})
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	got, err := parseObjectID(oid.Hex())
	if err != nil || got != oid {
		t.Fatalf("parseObjectID(%s) = %v, %v", oid.Hex(), got, err)
	}
	if _, err := parseObjectID("not-hex"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("err = %v, want ErrInvalidID", err)
	}
}
