// Package postgres stores journal snapshots in a PostgreSQL "snapshots"
// table through the pgx database/sql driver. The schema ships as embedded
// goose migrations.
package postgres
