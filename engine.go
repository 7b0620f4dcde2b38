package lmbridge

import (
	"context"

	"github.com/lmbridge/lmbridge-go/spec"
)

// Engine is a convenience wrapper bound to an engine handle. It adds no
// state of its own; every method delegates to the owning Bridge.
type Engine struct {
	b *Bridge
	h EngineHandle
}

// Engine wraps an engine handle for method-style use.
func (b *Bridge) Engine(h EngineHandle) *Engine {
	return &Engine{b: b, h: h}
}

// OpenEngine creates an engine and returns it pre-wrapped.
func (b *Bridge) OpenEngine(ctx context.Context, modelPath string, backend spec.Backend) (*Engine, error) {
	h, err := b.CreateEngine(ctx, modelPath, backend)
	if err != nil {
		return nil, err
	}
	return &Engine{b: b, h: h}, nil
}

func (e *Engine) Handle() EngineHandle { return e.h }

// NewConversation opens a session, optionally seeded with a system
// instruction ("" means none).
func (e *Engine) NewConversation(ctx context.Context, systemInstruction string) (*Conversation, error) {
	h, err := e.b.CreateConversation(ctx, e.h, systemInstruction)
	if err != nil {
		return nil, err
	}
	return &Conversation{b: e.b, h: h}, nil
}

// Close destroys the engine handle. Safe to call more than once.
func (e *Engine) Close() {
	e.b.DestroyEngine(e.h)
}

// Conversation is a convenience wrapper bound to a conversation handle.
type Conversation struct {
	b *Bridge
	h ConversationHandle
}

// Conversation wraps a conversation handle for method-style use.
func (b *Bridge) Conversation(h ConversationHandle) *Conversation {
	return &Conversation{b: b, h: h}
}

func (c *Conversation) Handle() ConversationHandle { return c.h }

// Send exchanges one role-tagged message. Blocking; see Bridge.SendMessage.
func (c *Conversation) Send(ctx context.Context, role spec.Role, content string) (string, error) {
	return c.b.SendMessage(ctx, c.h, role, content)
}

// SendUser is Send with the user role.
func (c *Conversation) SendUser(ctx context.Context, content string) (string, error) {
	return c.b.SendMessage(ctx, c.h, spec.RoleUser, content)
}

// Stats reports turn accounting for this conversation.
func (c *Conversation) Stats() (ConversationStats, error) {
	return c.b.ConversationStats(c.h)
}

// Close destroys the conversation handle. Safe to call more than once.
func (c *Conversation) Close() {
	c.b.DestroyConversation(c.h)
}
