package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"scribe/internal/errors"
	"scribe/internal/infra/auth"
)

func init() {
	goose.AddMigrationContext(upSplitLegacyPassword, nil)
}

// upSplitLegacyPassword moves credentials out of the old composite
// users.password column, "(hash,salt,iterations)", into typed columns.
// Databases created by 00001 have no such column and are left alone.
func upSplitLegacyPassword(ctx context.Context, tx *sql.Tx) error {
	var legacy bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'users' AND column_name = 'password'
		)`).Scan(&legacy)
	if err != nil {
		return errors.Wrap(err, "inspect users columns")
	}
	if !legacy {
		return nil
	}

	for _, stmt := range []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS password_hash VARCHAR(128)`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS salt VARCHAR(128)`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS iterations INTEGER`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT now()`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "add credential columns")
		}
	}

	return splitLegacyPasswords(ctx, tx)
}

func splitLegacyPasswords(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT name, password::text FROM users`)
	if err != nil {
		return errors.Wrap(err, "read legacy passwords")
	}

	type split struct {
		name string
		raw  string
	}
	var pending []split
	for rows.Next() {
		var s split
		if err := rows.Scan(&s.name, &s.raw); err != nil {
			rows.Close()
			return errors.Wrap(err, "scan legacy password")
		}
		pending = append(pending, s)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return errors.Wrap(err, "iterate legacy passwords")
	}
	rows.Close()

	for _, s := range pending {
		cred, err := auth.ParseStored(s.raw)
		if err != nil {
			return errors.Wrapf(err, "user %q", s.name)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET password_hash = $1, salt = $2, iterations = $3 WHERE name = $4`,
			cred.Hash, cred.Salt, cred.Iterations, s.name,
		); err != nil {
			return errors.Wrapf(err, "store credential for %q", s.name)
		}
	}

	for _, stmt := range []string{
		`ALTER TABLE users ALTER COLUMN password_hash SET NOT NULL`,
		`ALTER TABLE users ALTER COLUMN salt SET NOT NULL`,
		`ALTER TABLE users ALTER COLUMN iterations SET NOT NULL`,
		`ALTER TABLE users DROP COLUMN password`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "finalize credential columns")
		}
	}

	return nil
}
