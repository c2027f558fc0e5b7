package ipc

import (
	"io"
	"log/slog"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Transport carries whole envelopes. Streams frame them with a length
// prefix; websockets send one envelope per message.
type Transport interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(env Envelope) error
	Close() error
}

// Stream adapts a byte stream such as a unix socket to a Transport.
func Stream(rwc io.ReadWriteCloser) Transport { return stream{rwc} }

type stream struct{ rwc io.ReadWriteCloser }

func (s stream) ReadEnvelope() (Envelope, error)  { return ReadEnvelope(s.rwc) }
func (s stream) WriteEnvelope(env Envelope) error { return WriteEnvelope(s.rwc, env) }
func (s stream) Close() error                     { return s.rwc.Close() }

// Connection is one game session speaking envelopes. The session is
// identified once the init message has been handled.
type Connection struct {
	t        Transport
	handlers map[string]Handler
	Session  string
}

func NewConnection(t Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		t:        t,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.t.WriteEnvelope(env)
}

// ReadLoop blocks until the connection closes or errors. It owns the transport
// lifetime so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.t.Close()

	for {
		env, err := c.t.ReadEnvelope()
		if err != nil {
			slog.Info("connection read ended", "session", c.Session, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.t.WriteEnvelope(*resp); err != nil {
				slog.Error("failed to send response", "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "type", resp.Type, "session", c.Session)
		}
	}
}
