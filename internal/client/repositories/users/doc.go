// Package users provides the local persistence layer for user records.
//
// # Overview
//
// Repository is the contract the user service depends on: read everything
// that is persisted, and upsert a batch atomically. Store adds the
// maintenance operations the front end needs (Clear, Count).
//
// Four engines implement Store:
//
//   - SQLiteRepository: embedded database via modernc.org/sqlite
//   - PostgresRepository: PostgreSQL via the pgx database/sql driver
//   - RedisRepository: a single Redis hash, one field per user
//   - MemoryRepository: process-local map, for tests and offline runs
//
// # Guarantees
//
// IDs are unique in every engine: upserting an existing ID overwrites its
// fields. A batch either lands completely or not at all. Within one batch a
// repeated ID resolves to its last occurrence. SQL and Redis engines return
// users ordered by ID; the memory engine returns first-insertion order.
//
// All engines are safe for concurrent use.
package users
