// Package journal keeps a history of drive time estimates. Records are
// appended by a Recorder listening on the event bus and stored either in a
// rotating JSONL file or a SQLite database.
package journal
