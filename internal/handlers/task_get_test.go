package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/middlewares"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

func TestGetTaskHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockTaskGetter(ctrl)
	handler := NewGetTaskHandler(svc)

	identity := &middlewares.Identity{UserID: 1, Username: "alice"}

	t.Run("Success", func(t *testing.T) {
		task := &models.TaskDB{ID: 42, Title: "buy milk"}
		svc.EXPECT().Get(gomock.Any(), int64(42), int64(1)).Return(task, nil)

		rr := serveTask(t, http.MethodGet, "/tasks/{id}", "/tasks/42", nil, identity, handler)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success bool          `json:"success"`
			Message string        `json:"message"`
			Data    models.TaskDB `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "task retrieved successfully", resp.Message)
		assert.Equal(t, int64(42), resp.Data.ID)
		assert.Equal(t, "buy milk", resp.Data.Title)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc.EXPECT().Get(gomock.Any(), int64(42), int64(1)).Return(nil, services.ErrTaskNotFound)

		rr := serveTask(t, http.MethodGet, "/tasks/{id}", "/tasks/42", nil, identity, handler)

		require.Equal(t, http.StatusNotFound, rr.Code)

		var resp models.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "task not found", resp.Message)
	})

	t.Run("MalformedIDIsNotFound", func(t *testing.T) {
		rr := serveTask(t, http.MethodGet, "/tasks/{id}", "/tasks/abc", nil, identity, handler)

		require.Equal(t, http.StatusNotFound, rr.Code)

		var resp models.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "task not found", resp.Message)
	})

	t.Run("NoIdentity", func(t *testing.T) {
		rr := serveTask(t, http.MethodGet, "/tasks/{id}", "/tasks/42", nil, nil, handler)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("InternalError", func(t *testing.T) {
		svc.EXPECT().Get(gomock.Any(), int64(42), int64(1)).Return(nil, errors.New("db down"))

		rr := serveTask(t, http.MethodGet, "/tasks/{id}", "/tasks/42", nil, identity, handler)

		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
