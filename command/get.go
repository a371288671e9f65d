package command

import (
	"errors"

	"redis-lite/conn"
	"redis-lite/resp"
	"redis-lite/rerr"
	"redis-lite/store"
)

// Get fetches the value stored at Key.
type Get struct {
	Key string
}

func parseGet(p *resp.Parser) (Command, error) {
	key, err := p.NextString()
	if err != nil {
		if errors.Is(err, rerr.ErrEndOfStream) {
			return nil, rerr.Protocolf("GET requires a key")
		}
		return nil, err
	}
	return Get{Key: key}, nil
}

// Apply replies with the value as a bulk string, or a null bulk string if
// the key is absent or expired.
func (c Get) Apply(st store.Store, cn *conn.Conn) error {
	v, ok := st.Get(c.Key)
	if !ok {
		return cn.WriteFrame(resp.NullBulkString{})
	}
	return cn.WriteFrame(resp.BulkString{Value: v})
}

// IntoFrame serializes the GET request as a client would send it.
func (c Get) IntoFrame() (resp.Frame, error) {
	return resp.Array{Items: []resp.Frame{
		resp.BulkString{Value: []byte("get")},
		resp.BulkString{Value: []byte(c.Key)},
	}}, nil
}
