package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TWRT/task-king/internal/models"
)

const tasksCollection = "tasks"

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Priority    string             `bson:"priority"`
	Completed   bool               `bson:"completed"`
}

func (d taskDocument) toModel() models.Task {
	return models.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    models.Priority(d.Priority),
		Completed:   d.Completed,
	}
}

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("Error trying to open MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("Error trying to connect: %w", err)
	}
	return client, nil
}

type MongoTaskRepository struct {
	collection *mongo.Collection
}

func NewMongoTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{collection: db.Collection(tasksCollection)}
}

func (r *MongoTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("Error trying to get tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("Error trying to decode tasks: %w", err)
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toModel())
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Create(ctx context.Context, fields models.TaskFields) (models.Task, error) {
	task := models.NewTask("", fields)
	if err := validateTask(task); err != nil {
		return models.Task{}, err
	}

	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Completed:   task.Completed,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return models.Task{}, fmt.Errorf("Error trying to create the task: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoTaskRepository) UpdateByID(ctx context.Context, id string, fields models.TaskFields) (models.Task, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return models.Task{}, err
	}
	if fields.Priority != nil && !fields.Priority.Valid() {
		return models.Task{}, validateTask(models.Task{Priority: *fields.Priority})
	}

	set := bson.M{}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Priority != nil {
		set["priority"] = string(*fields.Priority)
	}
	if fields.Completed != nil {
		set["completed"] = *fields.Completed
	}

	filter := bson.M{"_id": oid}
	var doc taskDocument
	if fields.Empty() {
		err = r.collection.FindOne(ctx, filter).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("Error trying to update the task: %w", err)
	}

	return doc.toModel(), nil
}

func (r *MongoTaskRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("Error trying to delete the task: %w", err)
	}
	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: Cast to ObjectId failed for value %q", ErrInvalidID, id)
	}
	return oid, nil
}
