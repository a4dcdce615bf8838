// Package postgres provides PostgreSQL implementations of the store
// interfaces, using database/sql over the pgx driver. List-valued fields
// (skills, strengths, keywords) and analysis results are stored as jsonb.
package postgres
