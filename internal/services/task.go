package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/models"
)

var (
	// ErrTaskNotFound covers both an absent task and a task owned by someone
	// else; callers must not be able to tell the two apart.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskReader defines owner-scoped read operations for tasks.
type TaskReader interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.TaskDB, error)
	GetByID(ctx context.Context, id, ownerID int64) (*models.TaskDB, error)
}

// TaskWriter defines owner-scoped write operations for tasks.
type TaskWriter interface {
	Create(ctx context.Context, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error)
	Update(ctx context.Context, id, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error)
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TaskService handles owner-scoped task CRUD and event publishing.
type TaskService struct {
	readRepo    TaskReader
	writeRepo   TaskWriter
	kafkaWriter KafkaWriter
}

// NewTaskService creates a new TaskService. kafkaWriter may be nil, in which
// case event publishing is skipped.
func NewTaskService(readRepo TaskReader, writeRepo TaskWriter, kafkaWriter KafkaWriter) *TaskService {
	return &TaskService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a task mutation event to Kafka. Fire-and-forget:
// failures are logged and never surfaced to the client.
func (s *TaskService) publishEvent(ctx context.Context, operation string, taskID, ownerID int64) {
	if s.kafkaWriter == nil {
		return
	}

	event := models.TaskEvent{
		EventID:   uuid.NewString(),
		Operation: operation,
		TaskID:    taskID,
		OwnerID:   ownerID,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal task event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(taskID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish task event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("task event published", "event_id", event.EventID, "operation", operation, "task_id", taskID)
	}
}

// List returns all of the owner's tasks, newest first.
func (s *TaskService) List(ctx context.Context, ownerID int64) ([]models.TaskDB, error) {
	tasks, err := s.readRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to list tasks", "ownerID", ownerID, "error", err)
		return nil, err
	}
	return tasks, nil
}

// Get returns the owner's task or ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, id, ownerID int64) (*models.TaskDB, error) {
	task, err := s.readRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to get task", "id", id, "ownerID", ownerID, "error", err)
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Create stores a new task for the owner and publishes a create event.
func (s *TaskService) Create(ctx context.Context, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error) {
	task, err := s.writeRepo.Create(ctx, ownerID, title, description, completed)
	if err != nil {
		logger.Log.Errorw("failed to create task", "ownerID", ownerID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, "create", task.ID, ownerID)
	return task, nil
}

// Update overwrites the owner's task and publishes an update event.
func (s *TaskService) Update(ctx context.Context, id, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error) {
	task, err := s.writeRepo.Update(ctx, id, ownerID, title, description, completed)
	if err != nil {
		logger.Log.Errorw("failed to update task", "id", id, "ownerID", ownerID, "error", err)
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	s.publishEvent(ctx, "update", task.ID, ownerID)
	return task, nil
}

// Delete removes the owner's task and publishes a delete event.
func (s *TaskService) Delete(ctx context.Context, id, ownerID int64) error {
	deleted, err := s.writeRepo.Delete(ctx, id, ownerID)
	if err != nil {
		logger.Log.Errorw("failed to delete task", "id", id, "ownerID", ownerID, "error", err)
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}

	s.publishEvent(ctx, "delete", id, ownerID)
	return nil
}
