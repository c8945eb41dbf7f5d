package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one bridge instance talking to the sidecar. Each team gets
// its own connection, named after the hello handshake.
type Connection struct {
	conn     net.Conn
	handlers map[string]Handler

	writeMu sync.Mutex

	mu   sync.Mutex
	team string
}

func NewConnection(conn net.Conn) *Connection {
	return &Connection{
		conn:     conn,
		handlers: make(map[string]Handler),
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) SetTeam(team string) {
	c.mu.Lock()
	c.team = team
	c.mu.Unlock()
}

func (c *Connection) Team() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.team
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.write(env)
}

func (c *Connection) write(env Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return WriteEnvelope(c.conn, env)
}

// Serve dispatches envelopes to their handlers until the peer hangs up,
// a reply cannot be written or ctx is cancelled. It owns the conn and closes
// it on return. A clean hang-up or cancellation returns nil.
func (c *Connection) Serve(ctx context.Context) error {
	defer c.conn.Close()
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				slog.Info("connection closed", "team", c.Team())
				return nil
			}
			return fmt.Errorf("read envelope: %w", err)
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "team", c.Team(), "error", err)
			continue
		}
		if resp == nil {
			continue
		}
		if err := c.write(*resp); err != nil {
			return fmt.Errorf("send %s: %w", resp.Type, err)
		}
		slog.Debug("sent response", "type", resp.Type, "team", c.Team())
	}
}
