// tasks.go - Task planner records.

package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Task statuses.
const (
	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskDone       = "done"
)

// Task is a planned farm activity.
type Task struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	DueDate     string    `bson:"due_date" json:"dueDate"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// CreateTask inserts a task for a user.
func CreateTask(task *Task) error {
	ctx, cancel := queryContext()
	defer cancel()

	task.ID = uuid.New().String()
	task.CreatedAt = time.Now()
	if task.Status == "" {
		task.Status = TaskPending
	}

	if _, err := mongoDB.Collection("tasks").InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// ListTasks returns a user's tasks, newest first.
func ListTasks(userID string) ([]Task, error) {
	ctx, cancel := queryContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := mongoDB.Collection("tasks").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask updates title, description, due date and status of a task the
// user owns.
func UpdateTask(userID, taskID string, task *Task) error {
	ctx, cancel := queryContext()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      task.Status,
	}}

	result, err := mongoDB.Collection("tasks").UpdateOne(ctx, bson.M{"id": taskID, "user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("task not found: %s", taskID)
	}
	return nil
}

// DeleteTask removes a task the user owns.
func DeleteTask(userID, taskID string) error {
	ctx, cancel := queryContext()
	defer cancel()

	result, err := mongoDB.Collection("tasks").DeleteOne(ctx, bson.M{"id": taskID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("task not found: %s", taskID)
	}
	return nil
}
