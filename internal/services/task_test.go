package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/models"
)

func strPtr(s string) *string { return &s }

func TestTaskService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	readRepo := NewMockTaskReader(ctrl)
	svc := NewTaskService(readRepo, NewMockTaskWriter(ctrl), nil)

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tasks := []models.TaskDB{
			{ID: 2, OwnerID: 1, Title: "newer"},
			{ID: 1, OwnerID: 1, Title: "older"},
		}
		readRepo.EXPECT().ListByOwner(ctx, int64(1)).Return(tasks, nil)

		got, err := svc.List(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	})

	t.Run("Empty", func(t *testing.T) {
		readRepo.EXPECT().ListByOwner(ctx, int64(1)).Return([]models.TaskDB{}, nil)

		got, err := svc.List(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("RepoError", func(t *testing.T) {
		repoErr := errors.New("db down")
		readRepo.EXPECT().ListByOwner(ctx, int64(1)).Return(nil, repoErr)

		got, err := svc.List(ctx, 1)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestTaskService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	readRepo := NewMockTaskReader(ctrl)
	svc := NewTaskService(readRepo, NewMockTaskWriter(ctrl), nil)

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		task := &models.TaskDB{ID: 1, OwnerID: 1, Title: "buy milk"}
		readRepo.EXPECT().GetByID(ctx, int64(1), int64(1)).Return(task, nil)

		got, err := svc.Get(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		readRepo.EXPECT().GetByID(ctx, int64(42), int64(1)).Return(nil, nil)

		got, err := svc.Get(ctx, 42, 1)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("ForeignOwnerIsNotFound", func(t *testing.T) {
		readRepo.EXPECT().GetByID(ctx, int64(1), int64(2)).Return(nil, nil)

		got, err := svc.Get(ctx, 1, 2)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		repoErr := errors.New("db down")
		readRepo.EXPECT().GetByID(ctx, int64(1), int64(1)).Return(nil, repoErr)

		got, err := svc.Get(ctx, 1, 1)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestTaskService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockTaskWriter(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)
	svc := NewTaskService(NewMockTaskReader(ctrl), writeRepo, kafkaWriter)

	ctx := context.Background()

	t.Run("SuccessPublishesEvent", func(t *testing.T) {
		task := &models.TaskDB{ID: 7, OwnerID: 1, Title: "buy milk", Description: strPtr("2 liters")}
		writeRepo.EXPECT().
			Create(ctx, int64(1), "buy milk", gomock.Any(), false).
			Return(task, nil)
		kafkaWriter.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
				require.Len(t, msgs, 1)
				assert.Equal(t, "7", string(msgs[0].Key))

				var event models.TaskEvent
				require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
				assert.Equal(t, "create", event.Operation)
				assert.Equal(t, int64(7), event.TaskID)
				assert.Equal(t, int64(1), event.OwnerID)
				assert.NotEmpty(t, event.EventID)
				return nil
			})

		got, err := svc.Create(ctx, 1, "buy milk", strPtr("2 liters"), false)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("PublishFailureIsIgnored", func(t *testing.T) {
		task := &models.TaskDB{ID: 8, OwnerID: 1, Title: "buy milk"}
		writeRepo.EXPECT().
			Create(ctx, int64(1), "buy milk", gomock.Any(), false).
			Return(task, nil)
		kafkaWriter.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			Return(errors.New("broker down"))

		got, err := svc.Create(ctx, 1, "buy milk", nil, false)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("RepoError", func(t *testing.T) {
		repoErr := errors.New("insert failed")
		writeRepo.EXPECT().
			Create(ctx, int64(1), "buy milk", gomock.Any(), false).
			Return(nil, repoErr)

		got, err := svc.Create(ctx, 1, "buy milk", nil, false)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestTaskService_Create_NilKafkaWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockTaskWriter(ctrl)
	svc := NewTaskService(NewMockTaskReader(ctrl), writeRepo, nil)

	ctx := context.Background()

	task := &models.TaskDB{ID: 1, OwnerID: 1, Title: "buy milk"}
	writeRepo.EXPECT().
		Create(ctx, int64(1), "buy milk", gomock.Any(), false).
		Return(task, nil)

	got, err := svc.Create(ctx, 1, "buy milk", nil, false)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestTaskService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockTaskWriter(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)
	svc := NewTaskService(NewMockTaskReader(ctrl), writeRepo, kafkaWriter)

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		task := &models.TaskDB{ID: 1, OwnerID: 1, Title: "updated", Completed: true}
		writeRepo.EXPECT().
			Update(ctx, int64(1), int64(1), "updated", gomock.Any(), true).
			Return(task, nil)
		kafkaWriter.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
				var event models.TaskEvent
				require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
				assert.Equal(t, "update", event.Operation)
				return nil
			})

		got, err := svc.Update(ctx, 1, 1, "updated", nil, true)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})

	t.Run("NotFoundDoesNotPublish", func(t *testing.T) {
		writeRepo.EXPECT().
			Update(ctx, int64(42), int64(1), "updated", gomock.Any(), true).
			Return(nil, nil)

		got, err := svc.Update(ctx, 42, 1, "updated", nil, true)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		repoErr := errors.New("update failed")
		writeRepo.EXPECT().
			Update(ctx, int64(1), int64(1), "updated", gomock.Any(), true).
			Return(nil, repoErr)

		got, err := svc.Update(ctx, 1, 1, "updated", nil, true)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writeRepo := NewMockTaskWriter(ctrl)
	kafkaWriter := NewMockKafkaWriter(ctrl)
	svc := NewTaskService(NewMockTaskReader(ctrl), writeRepo, kafkaWriter)

	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		writeRepo.EXPECT().Delete(ctx, int64(1), int64(1)).Return(true, nil)
		kafkaWriter.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
				var event models.TaskEvent
				require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
				assert.Equal(t, "delete", event.Operation)
				assert.Equal(t, int64(1), event.TaskID)
				return nil
			})

		assert.NoError(t, svc.Delete(ctx, 1, 1))
	})

	t.Run("NotFoundDoesNotPublish", func(t *testing.T) {
		writeRepo.EXPECT().Delete(ctx, int64(42), int64(1)).Return(false, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 42, 1), ErrTaskNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		repoErr := errors.New("delete failed")
		writeRepo.EXPECT().Delete(ctx, int64(1), int64(1)).Return(false, repoErr)

		assert.ErrorIs(t, svc.Delete(ctx, 1, 1), repoErr)
	})
}
