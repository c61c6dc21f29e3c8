package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articles-api/internal/config"
	"articles-api/internal/resilience/circuitbreaker"
)

func TestOpen_MissingURL(t *testing.T) {
	db, err := Open(context.Background(), config.DatabaseConfig{})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestConfigure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	Configure(db, config.DatabaseConfig{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Second,
	})

	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}

func TestMigrateUp_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_articles_published_id")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, MigrateUp(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err = MigrateUp(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate up")
}

func TestMigrateUp_ThroughCircuitBreaker(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_articles_published_id")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	guarded := circuitbreaker.NewDBCircuitBreaker(db)
	require.NoError(t, MigrateUp(context.Background(), guarded))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_SchemaHasTitleConstraint(t *testing.T) {
	assert.Contains(t, schema[0], "CONSTRAINT articles_title_key UNIQUE (title)")
	assert.Contains(t, schema[0], "VARCHAR(300)")
}

func TestSeedDemoArticles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	for _, a := range DemoArticles {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles (id, title, description, body, published)")).
			WithArgs(a.ID, a.Title, a.Description, a.Body, a.Published).
			WillReturnResult(sqlmock.NewResult(a.ID, 1))
	}
	mock.ExpectExec(regexp.QuoteMeta("SELECT setval")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, SeedDemoArticles(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedDemoArticles_ExistingTitleIsSkipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	for _, a := range DemoArticles {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO articles (id, title, description, body, published)\nVALUES ($1, $2, $3, $4, $5)\nON CONFLICT DO NOTHING")).
			WithArgs(a.ID, a.Title, a.Description, a.Body, a.Published).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(regexp.QuoteMeta("SELECT setval")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, SeedDemoArticles(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NotContains(t, seedInsert, "ON CONFLICT (id)")
}

func TestSeedDemoArticles_InsertFailsRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO articles").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err = SeedDemoArticles(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDemoArticles_Fixed(t *testing.T) {
	require.Len(t, DemoArticles, 2)
	assert.Equal(t, int64(100001), DemoArticles[0].ID)
	assert.True(t, DemoArticles[0].Published)
	assert.Equal(t, int64(100002), DemoArticles[1].ID)
	assert.False(t, DemoArticles[1].Published)
}
