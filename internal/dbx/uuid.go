package dbx

import "github.com/google/uuid"

// IsUUID reports whether id can be bound to a UUID column. Postgres rejects
// anything else with 22P02, so repositories treat a malformed id as a
// missing row instead of sending it.
func IsUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
