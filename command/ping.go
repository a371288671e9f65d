package command

import (
	"errors"

	"redis-lite/conn"
	"redis-lite/resp"
	"redis-lite/rerr"
	"redis-lite/store"
)

// Ping replies PONG, or echoes Msg if one was given.
type Ping struct {
	Msg    []byte
	HasMsg bool
}

func parsePing(p *resp.Parser) (Command, error) {
	msg, err := p.NextBytes()
	if err != nil {
		if errors.Is(err, rerr.ErrEndOfStream) {
			return Ping{}, nil
		}
		return nil, err
	}
	return Ping{Msg: msg, HasMsg: true}, nil
}

// Apply writes PONG, or the given message as a bulk string.
func (c Ping) Apply(st store.Store, cn *conn.Conn) error {
	if !c.HasMsg {
		return cn.WriteFrame(resp.SimpleString{Value: "PONG"})
	}
	return cn.WriteFrame(resp.BulkString{Value: c.Msg})
}

// IntoFrame serializes the PING request as a client would send it.
func (c Ping) IntoFrame() (resp.Frame, error) {
	items := []resp.Frame{resp.BulkString{Value: []byte("ping")}}
	if c.HasMsg {
		items = append(items, resp.BulkString{Value: c.Msg})
	}
	return resp.Array{Items: items}, nil
}
