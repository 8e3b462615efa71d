// Package message_type_enum defines persisted message payload kinds.
package message_type_enum

const (
	Text int8 = iota
	File
)
