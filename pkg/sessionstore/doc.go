// Package sessionstore persists the authenticated identity between client
// runs. A single record lives under a well-known key; the Store interface
// abstracts the backend so the session manager and tests can swap durable
// storage (JSON file, bbolt bucket) for an in-memory one.
//
// The record layout is deliberately boring: the identity serialized as
// JSON, timestamps in RFC 3339. A record that fails to decode is reported
// as ErrRecordCorrupt and left for the caller to clear; stores never
// self-destruct data on read.
package sessionstore
