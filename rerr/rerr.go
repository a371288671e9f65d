// Package rerr collects the sentinel errors shared across redis-lite's
// packages. Callers compare against these with errors.Is; the helper
// constructors attach detail with fmt.Errorf's %w so the sentinel survives
// wrapping.
package rerr

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteFrame means the buffer does not yet hold a full frame.
	// It is not a protocol violation — the caller should read more bytes
	// and retry.
	ErrIncompleteFrame = errors.New("resp: incomplete frame")

	// ErrProtocol means the bytes present are not a valid frame, or a
	// well-formed frame is not a valid command request.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrUnknownCommand means a frame's command name did not match any
	// recognized command.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrWrongFrameType means a frame was asked to behave as a variant it
	// is not (e.g. encoding an unsupported frame, or indexing into an
	// Array operand that is not actually an Array).
	ErrWrongFrameType = errors.New("resp: wrong frame type")

	// ErrEndOfStream means a Parser ran out of array elements.
	ErrEndOfStream = errors.New("resp: end of stream")

	// ErrConnectionReset means the peer closed the stream mid-frame, or,
	// on the client side, before sending the reply to a request.
	ErrConnectionReset = errors.New("conn: connection reset")

	// ErrResponse means a client received a well-formed frame that does
	// not make sense as a reply to the command it sent.
	ErrResponse = errors.New("client: unexpected response")
)

// Protocolf wraps ErrProtocol with a formatted detail message.
func Protocolf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrProtocol}, args...)...)
}

// UnknownCommandf wraps ErrUnknownCommand with the offending command name.
func UnknownCommandf(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// WrongFrameTypef wraps ErrWrongFrameType with a formatted detail message.
func WrongFrameTypef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrWrongFrameType}, args...)...)
}

// ConnectionResetf wraps ErrConnectionReset with a formatted detail message.
func ConnectionResetf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConnectionReset}, args...)...)
}

// Responsef wraps ErrResponse with a formatted detail message.
func Responsef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrResponse}, args...)...)
}
