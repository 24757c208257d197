package repository

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/TWRT/task-king/internal/models"
)

// These run against the driver's mock deployment, so they need no server.

func newMockMongo(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func tasksNamespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + tasksCollection
}

func taskDoc(id primitive.ObjectID, title, description, priority string, completed bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: description},
		{Key: "priority", Value: priority},
		{Key: "completed", Value: completed},
	}
}

func TestMongoCreate(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("applies defaults", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		task, err := repo.Create(context.Background(), models.TaskFields{Title: strPtr("Call mom")})
		if err != nil {
			mt.Fatalf("Create: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(task.ID); err != nil {
			mt.Fatalf("id %q is not an ObjectID: %v", task.ID, err)
		}
		want := models.Task{ID: task.ID, Title: "Call mom", Priority: models.PriorityLow}
		if task != want {
			mt.Fatalf("task = %+v, want %+v", task, want)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "insert" {
			mt.Fatalf("started event = %+v, want insert", evt)
		}
		doc := evt.Command.Lookup("documents", "0").Document()
		if got := doc.Lookup("_id").ObjectID().Hex(); got != task.ID {
			mt.Errorf("stored _id = %s, want %s", got, task.ID)
		}
		if got := doc.Lookup("priority").StringValue(); got != "Low" {
			mt.Errorf("stored priority = %q, want Low", got)
		}
		if got := doc.Lookup("description").StringValue(); got != "" {
			mt.Errorf("stored description = %q, want empty", got)
		}
		if doc.Lookup("completed").Boolean() {
			mt.Error("stored completed = true, want false")
		}
	})

	mt.Run("rejects unknown priority", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)

		_, err := repo.Create(context.Background(), models.TaskFields{Title: strPtr("x"), Priority: prioPtr("Urgent")})
		if !errors.Is(err, ErrInvalidTask) {
			mt.Fatalf("err = %v, want ErrInvalidTask", err)
		}
		if evt := mt.GetStartedEvent(); evt != nil {
			mt.Errorf("invalid task reached the server: %s", evt.CommandName)
		}
	})
}

func TestMongoList(t *testing.T) {
	mt := newMockMongo(t)

	mt.Run("decodes documents in order", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNamespace(mt), mtest.FirstBatch,
			taskDoc(first, "one", "", "High", false),
			taskDoc(second, "two", "d", "Low", true),
		))

		tasks, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		want := []models.Task{
			{ID: first.Hex(), Title: "one", Priority: models.PriorityHigh},
			{ID: second.Hex(), Title: "two", Description: "d", Priority: models.PriorityLow, Completed: true},
		}
		if len(tasks) != len(want) || tasks[0] != want[0] || tasks[1] != want[1] {
			mt.Fatalf("List = %+v, want %+v", tasks, want)
		}
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNamespace(mt), mtest.FirstBatch))

		tasks, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("List: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			mt.Fatalf("List = %#v, want empty non-nil slice", tasks)
		}
	})
}

func TestMongoUpdateByID(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()

	mt.Run("sets only present fields", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key:   "value",
			Value: taskDoc(id, "Plan trip", "rome", "Medium", true),
		}))

		task, err := repo.UpdateByID(ctx, id.Hex(), models.TaskFields{Completed: boolPtr(true)})
		if err != nil {
			mt.Fatalf("UpdateByID: %v", err)
		}
		want := models.Task{ID: id.Hex(), Title: "Plan trip", Description: "rome", Priority: models.PriorityMedium, Completed: true}
		if task != want {
			mt.Fatalf("task = %+v, want %+v", task, want)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "findAndModify" {
			mt.Fatalf("started event = %+v, want findAndModify", evt)
		}
		if got := evt.Command.Lookup("query", "_id").ObjectID(); got != id {
			mt.Errorf("filter _id = %s, want %s", got.Hex(), id.Hex())
		}
		if !evt.Command.Lookup("new").Boolean() {
			mt.Error("update does not return the modified document")
		}
		set := evt.Command.Lookup("update", "$set").Document()
		if !set.Lookup("completed").Boolean() {
			mt.Error("$set.completed != true")
		}
		for _, absent := range []string{"title", "description", "priority"} {
			if _, err := set.LookupErr(absent); err == nil {
				mt.Errorf("$set carries absent field %q", absent)
			}
		}
	})

	mt.Run("unknown id", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.UpdateByID(ctx, primitive.NewObjectID().Hex(), models.TaskFields{Completed: boolPtr(true)})
		if !errors.Is(err, ErrTaskNotFound) {
			mt.Fatalf("err = %v, want ErrTaskNotFound", err)
		}
	})

	mt.Run("empty body reads the task", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNamespace(mt), mtest.FirstBatch,
			taskDoc(id, "Keep", "", "Low", false),
		))

		task, err := repo.UpdateByID(ctx, id.Hex(), models.TaskFields{})
		if err != nil {
			mt.Fatalf("UpdateByID: %v", err)
		}
		if task.ID != id.Hex() || task.Title != "Keep" {
			mt.Fatalf("task = %+v", task)
		}
		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "find" {
			mt.Fatalf("started event = %+v, want find", evt)
		}
	})

	mt.Run("empty body unknown id", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, tasksNamespace(mt), mtest.FirstBatch))

		_, err := repo.UpdateByID(ctx, primitive.NewObjectID().Hex(), models.TaskFields{})
		if !errors.Is(err, ErrTaskNotFound) {
			mt.Fatalf("err = %v, want ErrTaskNotFound", err)
		}
	})

	mt.Run("rejects unknown priority", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)

		_, err := repo.UpdateByID(ctx, primitive.NewObjectID().Hex(), models.TaskFields{Priority: prioPtr("Someday")})
		if !errors.Is(err, ErrInvalidTask) {
			mt.Fatalf("err = %v, want ErrInvalidTask", err)
		}
		if evt := mt.GetStartedEvent(); evt != nil {
			mt.Errorf("invalid update reached the server: %s", evt.CommandName)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)

		_, err := repo.UpdateByID(ctx, "zzz", models.TaskFields{Completed: boolPtr(true)})
		if !errors.Is(err, ErrInvalidID) {
			mt.Fatalf("err = %v, want ErrInvalidID", err)
		}
	})
}

func TestMongoDeleteByID(t *testing.T) {
	mt := newMockMongo(t)
	ctx := context.Background()

	mt.Run("unknown id succeeds", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := repo.DeleteByID(ctx, primitive.NewObjectID().Hex()); err != nil {
			mt.Fatalf("DeleteByID: %v", err)
		}
		if evt := mt.GetStartedEvent(); evt == nil || evt.CommandName != "delete" {
			mt.Fatalf("started event = %+v, want delete", evt)
		}
	})

	mt.Run("server error", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad delete",
		}))

		err := repo.DeleteByID(ctx, primitive.NewObjectID().Hex())
		if err == nil || errors.Is(err, ErrInvalidID) {
			mt.Fatalf("err = %v, want a store error", err)
		}
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.DB)

		if err := repo.DeleteByID(ctx, "not-hex"); !errors.Is(err, ErrInvalidID) {
			mt.Fatalf("err = %v, want ErrInvalidID", err)
		}
	})
}
