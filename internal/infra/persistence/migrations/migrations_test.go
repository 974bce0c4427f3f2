package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scribe/internal/errors"
)

func TestMigrations_EmbedsSQL(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)

	assert.Contains(t, files, "00001_create_accounts.sql")
	assert.Contains(t, files, "00002_create_blog_posts.sql")
}

func TestUp_UsesEmbeddedRoot(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Up(context.Background(), db))
	assert.Equal(t, ".", gotDir)
}

func TestUp_WrapsError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	boom := errors.New("boom")
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return boom
	}

	err = Up(context.Background(), db)
	assert.True(t, errors.Is(err, boom))
}

func TestDown_WrapsError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseDownContext
	defer func() { gooseDownContext = orig }()

	boom := errors.New("boom")
	gooseDownContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return boom
	}

	err = Down(context.Background(), db)
	assert.True(t, errors.Is(err, boom))
}

func beginMockTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	return tx, mock
}

func TestSplitLegacyPassword_NoLegacyColumn(t *testing.T) {
	tx, mock := beginMockTx(t)

	mock.ExpectQuery(`information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	require.NoError(t, upSplitLegacyPassword(context.Background(), tx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitLegacyPassword_SplitsComposite(t *testing.T) {
	tx, mock := beginMockTx(t)

	mock.ExpectQuery(`information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	for i := 0; i < 4; i++ {
		mock.ExpectExec(`ALTER TABLE users ADD COLUMN`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery(`SELECT name, password::text FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "password"}).
			AddRow("Barry Boron", "(abcd,ef01,40000)"))
	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("abcd", "ef01", 40000, "Barry Boron").
		WillReturnResult(sqlmock.NewResult(0, 1))
	for i := 0; i < 4; i++ {
		mock.ExpectExec(`ALTER TABLE users`).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, upSplitLegacyPassword(context.Background(), tx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSplitLegacyPassword_MalformedRowFails(t *testing.T) {
	tx, mock := beginMockTx(t)

	mock.ExpectQuery(`information_schema\.columns`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	for i := 0; i < 4; i++ {
		mock.ExpectExec(`ALTER TABLE users ADD COLUMN`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery(`SELECT name, password::text FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "password"}).AddRow("Barry Boron", "garbage"))

	err := upSplitLegacyPassword(context.Background(), tx)
	assert.Error(t, err)
}
