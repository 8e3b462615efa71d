// Package user_status_enum defines the client-settable presence values.
package user_status_enum

const (
	Online  = "online"
	Away    = "away"
	Busy    = "busy"
	Offline = "offline"
)

// Valid reports whether s is one of the known presence values.
func Valid(s string) bool {
	switch s {
	case Online, Away, Busy, Offline:
		return true
	}
	return false
}
