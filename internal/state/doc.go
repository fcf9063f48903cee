// Package state provides the guide's structured record store.
//
// # Overview
//
// Screens persist small structured records (today only the remembered media
// directory) under string keys. Records are JSON-encoded and kept in a single
// SQLite table so they survive restarts, mirroring a browser object store:
//
//	CREATE TABLE settings (
//	    key        TEXT PRIMARY KEY,
//	    value      BLOB NOT NULL,
//	    updated_at INTEGER NOT NULL
//	);
//
// # Core Types
//
// Records:
//   - The capability the UI depends on (Put, Get, Delete)
//   - Every method takes a context; the UI only calls it from tea.Cmds so the
//     update loop never blocks on disk
//
// SQLite:
//   - Records backed by modernc.org/sqlite (pure Go, no cgo)
//   - Upserts replace the whole record; there is no partial update
//
// Memory:
//   - Records held in a map guarded by sync.RWMutex
//   - Used by tests and when the database cannot be opened
//   - Values are copied on the way in and out
//
// # Error Semantics
//
// Get reports (false, nil) when the key is absent. Decode failures are
// returned as errors; callers on the restore path treat any error as
// "absent" and fall back to their defaults.
//
// # Usage Example
//
//	db, err := state.Open(ctx, "~/.local/share/guide/guide.db")
//	if err != nil {
//		// degrade to state.NewMemory()
//	}
//	defer db.Close()
//
//	_ = db.Put(ctx, state.KeyDirHandle, handle)
//	var h media.Handle
//	ok, err := db.Get(ctx, state.KeyDirHandle, &h)
package state
