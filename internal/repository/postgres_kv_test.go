package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/marketcart/internal/port"
	"github.com/nikolayk812/marketcart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresKVSuite struct {
	suite.Suite

	kv        port.KeyValueStore
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestPostgresKVSuite(t *testing.T) {
	suite.Run(t, new(postgresKVSuite))
}

func (suite *postgresKVSuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.kv = repository.NewPostgresKV(suite.pool)
}

func (suite *postgresKVSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(suite.T().Context()))
	}
}

func (suite *postgresKVSuite) TestGet() {
	defer suite.deleteAll()

	existingKey := gofakeit.UUID()
	existingValue := gofakeit.Name()
	suite.Require().NoError(suite.kv.Set(suite.T().Context(), existingKey, existingValue))

	tests := []struct {
		name      string
		key       string
		wantValue string
		wantFound bool
		wantError string
	}{
		{
			name:      "get existing key: ok",
			key:       existingKey,
			wantValue: existingValue,
			wantFound: true,
		},
		{
			name: "get missing key: not found",
			key:  gofakeit.UUID(),
		},
		{
			name:      "get empty key: error",
			key:       "",
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			value, found, err := suite.kv.Get(t.Context(), tt.key)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func (suite *postgresKVSuite) TestSetOverwrites() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := gofakeit.UUID()

	require.NoError(t, suite.kv.Set(ctx, key, `[]`))
	require.NoError(t, suite.kv.Set(ctx, key, `[{"id":"p1"}]`))

	value, found, err := suite.kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"p1"}]`, value)
}

func (suite *postgresKVSuite) TestSetEmptyKey() {
	err := suite.kv.Set(suite.T().Context(), "", "value")
	suite.EqualError(err, "key is empty")
}

func (suite *postgresKVSuite) TestWithTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	committedKey := gofakeit.UUID()
	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repository.NewPostgresKVWithTx(tx).Set(ctx, committedKey, "committed"))
	require.NoError(t, tx.Commit(ctx))

	rolledBackKey := gofakeit.UUID()
	tx, err = suite.pool.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repository.NewPostgresKVWithTx(tx).Set(ctx, rolledBackKey, "rolled back"))
	require.NoError(t, tx.Rollback(ctx))

	value, found, err := suite.kv.Get(ctx, committedKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "committed", value)

	_, found, err = suite.kv.Get(ctx, rolledBackKey)
	require.NoError(t, err)
	assert.False(t, found)
}

func (suite *postgresKVSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE kv_entries")
	suite.NoError(err)
}
