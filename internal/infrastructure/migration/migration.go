package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog/log"
)

// RunMigrations creates the profiles and cv_documents tables on startup.
// Every step is idempotent.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return err
		}
		log.Info().Str("name", m.Name).Msg("migration completed")
	}

	log.Info().Int("count", len(migrations)).Msg("all migrations completed")
	return nil
}

// Migration is a named, idempotent SQL statement.
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_profiles",
		SQL: `
		CREATE TABLE IF NOT EXISTS profiles (
			id          TEXT PRIMARY KEY,
			name        TEXT,
			email       TEXT,
			phone       TEXT,
			address     TEXT,
			bio         TEXT,
			education   JSONB NOT NULL DEFAULT '[]'::jsonb,
			experience  JSONB NOT NULL DEFAULT '[]'::jsonb,
			skills      TEXT[] NOT NULL DEFAULT '{}',
			hobbies     TEXT[] NOT NULL DEFAULT '{}',
			preferences TEXT,
			cv_link     TEXT,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "create_cv_documents",
		SQL: `
		CREATE TABLE IF NOT EXISTS cv_documents (
			id            UUID PRIMARY KEY,
			user_id       TEXT NOT NULL,
			template_used TEXT NOT NULL,
			file_url      TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "index_cv_documents_user_created",
		SQL:  `CREATE INDEX IF NOT EXISTS cv_documents_user_created_idx ON cv_documents (user_id, created_at DESC);`,
	},
}
