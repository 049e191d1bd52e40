package postgres

import (
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a connection pool against the content database. The schema is
// managed out of band; see db/schema.sql.
func New(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("pgx", dsn)
}
