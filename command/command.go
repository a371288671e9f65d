// Package command implements the recognized command set (Ping, Get, Set)
// as a tagged union dispatched off a decoded frame.
package command

import (
	"errors"
	"strings"

	"redis-lite/conn"
	"redis-lite/resp"
	"redis-lite/rerr"
	"redis-lite/store"
)

// Command is a parsed, ready-to-run request. FromFrame builds a variant
// from a decoded frame; Apply executes it against the store and writes a
// reply; IntoFrame serializes it back into the wire Array a client would
// send.
type Command interface {
	Apply(st store.Store, c *conn.Conn) error
	IntoFrame() (resp.Frame, error)
}

// FromFrame decodes frame as a command request. frame must be an Array
// whose first element is the command name.
func FromFrame(frame resp.Frame) (Command, error) {
	p, err := resp.NewParser(frame)
	if err != nil {
		if errors.Is(err, rerr.ErrWrongFrameType) {
			return nil, rerr.Protocolf("command frame must be an array, got %T", frame)
		}
		return nil, err
	}
	name, err := p.NextString()
	if err != nil {
		return nil, err
	}

	var cmd Command
	switch strings.ToUpper(name) {
	case "PING":
		cmd, err = parsePing(p)
	case "GET":
		cmd, err = parseGet(p)
	case "SET":
		cmd, err = parseSet(p)
	default:
		return nil, rerr.UnknownCommandf(name)
	}
	if err != nil {
		return nil, err
	}
	if err := p.Finish(); err != nil {
		return nil, err
	}
	return cmd, nil
}
