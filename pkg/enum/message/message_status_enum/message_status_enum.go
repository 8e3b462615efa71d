// Package message_status_enum defines message delivery states. The
// values are recorded but not enforced as a state machine; clients may
// observe any subset of transitions.
package message_status_enum

const (
	Unsent    int8 = iota // persisted, not yet pushed to any socket
	Sent                  // written to at least the sender's socket
	Delivered             // acknowledged by a recipient client
	Read                  // read receipt received
)
