// Package daynotes is the composition root of a single-user calendar that
// attaches a free-text note to each day of a fixed range and keeps those
// notes safe on disk.
//
// Persistence model:
//
//   - The current notes live in one "latest" JSON file, replaced atomically
//     (temp file, fsync, rename) on every save.
//   - Every save also writes a timestamped archive to saves/history; only the
//     newest archives are kept (60 by default).
//   - On start the latest file is loaded; a missing or corrupt file yields an
//     empty calendar instead of an error.
//
// Usage:
//
//	sess, err := daynotes.New(nil, daynotes.WithLogger(logger))
//	sess.Open(ctx)
//
//	day, _ := daynotes.ParseDay("2025-11-01")
//	err = sess.Edit(ctx, day, "Remember the meeting")
//
//	defer sess.Close(ctx)
package daynotes
