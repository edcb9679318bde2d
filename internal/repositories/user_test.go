package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		active_token TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		last_login_at TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(200) NOT NULL,
		description VARCHAR(1000),
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP
	);
	`
	_, err = db.Exec(schema)
	require.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Create(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "digest-alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "digest-alice", user.PasswordHash)
	assert.Nil(t, user.ActiveToken)
	assert.Nil(t, user.LastLoginAt)
	assert.False(t, user.CreatedAt.IsZero())

	t.Run("DuplicateUsername", func(t *testing.T) {
		dup, err := repo.Create(ctx, "alice", "digest-other")
		assert.Error(t, err)
		assert.Nil(t, dup)
	})
}

func TestUserReadRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	created, err := writeRepo.Create(ctx, "bob", "digest-bob")
	require.NoError(t, err)

	t.Run("GetByUsername", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "bob")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("GetByUsernameAbsent", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByCredentials", func(t *testing.T) {
		user, err := readRepo.GetByCredentials(ctx, "bob", "digest-bob")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "bob", user.Username)
	})

	t.Run("GetByCredentialsWrongHash", func(t *testing.T) {
		user, err := readRepo.GetByCredentials(ctx, "bob", "wrong-digest")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("GetByCredentialsUnknownUser", func(t *testing.T) {
		user, err := readRepo.GetByCredentials(ctx, "nobody", "digest-bob")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserWriteRepository_Tokens(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	created, err := writeRepo.Create(ctx, "carol", "digest-carol")
	require.NoError(t, err)

	t.Run("SetWithoutLoginTime", func(t *testing.T) {
		err := writeRepo.SetActiveToken(ctx, created.ID, "token-1", nil)
		require.NoError(t, err)

		user, err := readRepo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		require.NotNil(t, user.ActiveToken)
		assert.Equal(t, "token-1", *user.ActiveToken)
		assert.Nil(t, user.LastLoginAt)
	})

	t.Run("SetWithLoginTime", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		err := writeRepo.SetActiveToken(ctx, created.ID, "token-2", &now)
		require.NoError(t, err)

		user, err := readRepo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		require.NotNil(t, user.ActiveToken)
		assert.Equal(t, "token-2", *user.ActiveToken)
		require.NotNil(t, user.LastLoginAt)
		assert.WithinDuration(t, now, *user.LastLoginAt, time.Second)
	})

	t.Run("Clear", func(t *testing.T) {
		err := writeRepo.ClearActiveToken(ctx, created.ID)
		require.NoError(t, err)

		user, err := readRepo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.Nil(t, user.ActiveToken)
	})

	t.Run("ClearMissingUserIsNoOp", func(t *testing.T) {
		err := writeRepo.ClearActiveToken(ctx, 999999)
		assert.NoError(t, err)
	})
}
