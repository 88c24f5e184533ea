// Package store writes star-schema rows to PostgreSQL.
//
// Each source file is loaded inside one transaction. Dimension rows are
// inserted with ON CONFLICT DO NOTHING, users are upserted on their level,
// and songplays are appended unconditionally.
package store
