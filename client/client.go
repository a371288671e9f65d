// Package client implements a request/response convenience wrapper for
// talking to a redis-lite server: connect once, then issue Ping/Get/Set
// calls that each perform one round trip.
package client

import (
	"fmt"
	"net"
	"time"

	"redis-lite/command"
	"redis-lite/conn"
	"redis-lite/resp"
	"redis-lite/rerr"
)

// Client is a single connection to a redis-lite server.
type Client struct {
	nc net.Conn
	c  *conn.Conn
}

// Connect dials addr and returns a ready-to-use Client.
func Connect(addr string) (*Client, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("client: connect: %w", err)
	}
	return &Client{nc: nc, c: conn.New(nc)}, nil
}

// Close closes the underlying connection.
func (cl *Client) Close() error {
	return cl.nc.Close()
}

// Ping sends a PING, optionally carrying msg, and returns the server's
// reply payload.
func (cl *Client) Ping(msg []byte) ([]byte, error) {
	cmd := command.Ping{Msg: msg, HasMsg: msg != nil}
	reply, err := cl.roundTrip(cmd)
	if err != nil {
		return nil, err
	}
	switch v := reply.(type) {
	case resp.SimpleString:
		return []byte(v.Value), nil
	case resp.BulkString:
		return v.Value, nil
	default:
		return nil, rerr.Responsef("unexpected reply to PING: %T", reply)
	}
}

// Get fetches the value at key. ok is false if the key is absent or
// expired.
func (cl *Client) Get(key string) (value []byte, ok bool, err error) {
	reply, err := cl.roundTrip(command.Get{Key: key})
	if err != nil {
		return nil, false, err
	}
	switch v := reply.(type) {
	case resp.SimpleString:
		return []byte(v.Value), true, nil
	case resp.BulkString:
		return v.Value, true, nil
	case resp.NullBulkString:
		return nil, false, nil
	default:
		return nil, false, rerr.Responsef("unexpected reply to GET: %T", reply)
	}
}

// Set stores value at key with no expiration.
func (cl *Client) Set(key string, value []byte) error {
	return cl.set(command.Set{Key: key, Value: value})
}

// SetExpires stores value at key, expiring after ttl.
func (cl *Client) SetExpires(key string, value []byte, ttl time.Duration) error {
	return cl.set(command.Set{Key: key, Value: value, TTL: ttl, HasTTL: true})
}

func (cl *Client) set(cmd command.Set) error {
	reply, err := cl.roundTrip(cmd)
	if err != nil {
		return err
	}
	ss, ok := reply.(resp.SimpleString)
	if !ok || ss.Value != "OK" {
		return rerr.Responsef("unexpected reply to SET: %v", reply)
	}
	return nil
}

func (cl *Client) roundTrip(cmd command.Command) (resp.Frame, error) {
	frame, err := cmd.IntoFrame()
	if err != nil {
		return nil, err
	}
	if err := cl.c.WriteFrame(frame); err != nil {
		return nil, err
	}
	return cl.readResponse()
}

func (cl *Client) readResponse() (resp.Frame, error) {
	frame, err := cl.c.ReadFrame()
	if err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, rerr.ConnectionResetf("server closed the connection")
	}
	if se, ok := frame.(resp.SimpleError); ok {
		return nil, rerr.Responsef("%s", se.Value)
	}
	return frame, nil
}
