// Package utils provides loose type conversions shared by the relay.
// Gateway replies and envelope payloads arrive as strings or decoded JSON
// values; these helpers coerce them into the kinds declared by the log
// schemas.
package utils
