package command

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"redis-lite/conn"
	"redis-lite/resp"
	"redis-lite/rerr"
	"redis-lite/store"
)

// Set stores Value at Key, with an optional TTL set via the EX (seconds)
// or PX (milliseconds) option.
type Set struct {
	Key    string
	Value  []byte
	TTL    time.Duration
	HasTTL bool
}

func parseSet(p *resp.Parser) (Command, error) {
	key, err := p.NextString()
	if err != nil {
		if errors.Is(err, rerr.ErrEndOfStream) {
			return nil, rerr.Protocolf("SET requires a key")
		}
		return nil, err
	}
	value, err := p.NextBytes()
	if err != nil {
		if errors.Is(err, rerr.ErrEndOfStream) {
			return nil, rerr.Protocolf("SET requires a value")
		}
		return nil, err
	}

	opt, err := p.NextString()
	if err != nil {
		if errors.Is(err, rerr.ErrEndOfStream) {
			return Set{Key: key, Value: value}, nil
		}
		return nil, err
	}

	switch strings.ToUpper(opt) {
	case "EX":
		secs, err := p.NextIntUnsigned()
		if err != nil {
			return nil, err
		}
		return Set{Key: key, Value: value, TTL: time.Duration(secs) * time.Second, HasTTL: true}, nil
	case "PX":
		ms, err := p.NextIntUnsigned()
		if err != nil {
			return nil, err
		}
		return Set{Key: key, Value: value, TTL: time.Duration(ms) * time.Millisecond, HasTTL: true}, nil
	default:
		return nil, rerr.Protocolf("unknown SET option %q", opt)
	}
}

// Apply stores the value and replies with a simple "OK" status.
func (c Set) Apply(st store.Store, cn *conn.Conn) error {
	if c.HasTTL {
		ttl := c.TTL
		st.Set(c.Key, c.Value, &ttl)
	} else {
		st.Set(c.Key, c.Value, nil)
	}
	return cn.WriteFrame(resp.SimpleString{Value: "OK"})
}

// IntoFrame serializes the SET request as a client would send it. A TTL
// that is a whole number of seconds serializes as EX; anything finer
// serializes as PX.
func (c Set) IntoFrame() (resp.Frame, error) {
	items := []resp.Frame{
		resp.BulkString{Value: []byte("set")},
		resp.BulkString{Value: []byte(c.Key)},
		resp.BulkString{Value: c.Value},
	}
	if c.HasTTL {
		if c.TTL%time.Second == 0 {
			secs := int64(c.TTL / time.Second)
			items = append(items,
				resp.BulkString{Value: []byte("EX")},
				resp.BulkString{Value: []byte(strconv.FormatInt(secs, 10))},
			)
		} else {
			ms := int64(c.TTL / time.Millisecond)
			items = append(items,
				resp.BulkString{Value: []byte("PX")},
				resp.BulkString{Value: []byte(strconv.FormatInt(ms, 10))},
			)
		}
	}
	return resp.Array{Items: items}, nil
}
