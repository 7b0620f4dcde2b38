// Package drivertest provides an in-memory scripted driver for testing code
// that drives engines through lmbridge, without a real inference runtime.
package drivertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/lmbridge/lmbridge-go/driver"
	"github.com/lmbridge/lmbridge-go/spec"
)

// Driver is a scripted driver.Driver. The zero value is usable: engines open
// successfully and conversations echo the incoming content back as a plain
// text model message.
type Driver struct {
	// OpenErr, when set, fails every Open call.
	OpenErr error

	// ConversationErr, when set, fails every NewConversation call.
	ConversationErr error

	// Reply, when set, scripts the response for each incoming message.
	Reply func(msg spec.Message) (spec.Message, error)

	mu      sync.Mutex
	engines []*Engine
}

var _ driver.Driver = (*Driver)(nil)

func (d *Driver) Open(ctx context.Context, cfg spec.EngineConfig) (driver.Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}

	e := &Engine{drv: d, Config: cfg}

	d.mu.Lock()
	d.engines = append(d.engines, e)
	d.mu.Unlock()
	return e, nil
}

// Engines returns every engine opened so far, in order.
func (d *Driver) Engines() []*Engine {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Engine(nil), d.engines...)
}

// Engine is a fake driver.Engine that records the conversations opened
// against it.
type Engine struct {
	drv    *Driver
	Config spec.EngineConfig

	mu            sync.Mutex
	closed        bool
	conversations []*Conversation
}

func (e *Engine) NewConversation(ctx context.Context, cfg spec.ConversationConfig) (driver.Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.drv.ConversationErr != nil {
		return nil, e.drv.ConversationErr
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, fmt.Errorf("drivertest: engine is closed")
	}

	c := &Conversation{drv: e.drv, Config: cfg}
	c.history = append(c.history, cfg.Preface...)
	e.conversations = append(e.conversations, c)
	return c, nil
}

func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("drivertest: engine closed twice")
	}
	e.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// Conversations returns every conversation opened so far, in order.
func (e *Engine) Conversations() []*Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Conversation(nil), e.conversations...)
}

// Conversation is a fake driver.Conversation that appends each exchanged
// message pair to its history, the way a real session accumulates turns.
type Conversation struct {
	drv    *Driver
	Config spec.ConversationConfig

	mu      sync.Mutex
	closed  bool
	history []spec.Message
}

func (c *Conversation) SendMessage(ctx context.Context, msg spec.Message) (spec.Message, error) {
	if err := ctx.Err(); err != nil {
		return spec.Message{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return spec.Message{}, fmt.Errorf("drivertest: conversation is closed")
	}

	reply := spec.TextMessage(spec.RoleModel, contentText(msg.Content))
	if c.drv.Reply != nil {
		var err error
		reply, err = c.drv.Reply(msg)
		if err != nil {
			return spec.Message{}, err
		}
	}

	c.history = append(c.history, msg, reply)
	return reply, nil
}

func (c *Conversation) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("drivertest: conversation closed twice")
	}
	c.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (c *Conversation) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// History returns a copy of the accumulated messages: preface entries, then
// each sent message followed by its reply.
func (c *Conversation) History() []spec.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]spec.Message(nil), c.history...)
}

func contentText(c spec.Content) string {
	if t, ok := c.(spec.Text); ok {
		return string(t)
	}
	return ""
}
