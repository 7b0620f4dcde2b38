// Package driver defines the contract an inference engine integration must
// implement to be driven through lmbridge. The bridge treats implementations
// as black boxes: it never inspects engine state, only exchanges
// spec.Message values and closes what it opened.
//
// Drivers register themselves with lmbridge.Register, usually from an init
// function, the same way database/sql drivers do.
package driver

import (
	"context"

	"github.com/lmbridge/lmbridge-go/spec"
)

// Driver instantiates engines from resolved model assets.
type Driver interface {
	// Open loads the model named by cfg and returns a runnable engine.
	// The bridge has already validated that cfg.ModelPath is non-empty and
	// that cfg.Backend is a known selector.
	Open(ctx context.Context, cfg spec.EngineConfig) (Engine, error)
}

// Engine is one loaded, runnable model instance. Implementations document
// whether an Engine is safe for concurrent use by multiple conversations;
// the bridge adds no locking of its own around engine calls.
type Engine interface {
	// NewConversation starts a session against this engine, seeded with
	// cfg.Preface if present.
	NewConversation(ctx context.Context, cfg spec.ConversationConfig) (Conversation, error)

	// Close releases engine resources. The bridge guarantees Close is
	// called exactly once, and only after every conversation created from
	// this engine has been closed.
	Close() error
}

// Conversation is one dialogue session holding accumulating history.
// SendMessage calls on a single Conversation are never made concurrently by
// the bridge on behalf of one caller, but the caller must serialize its own
// use per conversation.
type Conversation interface {
	// SendMessage submits one message and blocks until the full response is
	// produced. On success the reply's Content is either spec.Text or
	// spec.Parts; anything else is treated as a protocol violation by the
	// bridge.
	SendMessage(ctx context.Context, msg spec.Message) (spec.Message, error)

	// Close releases session resources. Called exactly once by the bridge.
	Close() error
}
