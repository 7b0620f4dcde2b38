package lmbridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lmbridge/lmbridge-go/internal/handles"
	"github.com/lmbridge/lmbridge-go/spec"
)

// SendMessage submits one role-tagged message to the conversation at h and
// blocks until the engine has produced the entire response; there is no
// timeout, cancellation of in-flight generation, or partial delivery beyond
// what the driver itself honors through ctx.
//
// Role and content are forwarded to the driver unvalidated; empty strings
// are permitted. The response content is normalized to a single string:
// plain text verbatim, or the in-order concatenation of every "text" part
// with non-text parts skipped and no separator inserted. Any other content
// shape fails with a *spec.GenerationError even though the driver call
// succeeded.
//
// Concurrent SendMessage calls on distinct conversations are supported to
// whatever extent the driver supports them; concurrent calls on the same
// conversation are a caller error and the bridge does not serialize them.
func (b *Bridge) SendMessage(ctx context.Context, h ConversationHandle, role spec.Role, content string) (text string, err error) {
	defer b.guard("send message", &err)

	cs, ok := b.convs.Get(handles.Handle(h))
	if !ok {
		return "", spec.ErrConversationNotFound
	}

	start := time.Now()
	reply, err := cs.conv.SendMessage(ctx, spec.TextMessage(role, content))
	if err != nil {
		return "", &spec.GenerationError{Stage: "send", Err: err}
	}

	text, err = normalizeContent(reply.Content)
	if err != nil {
		return "", err
	}

	elapsed := time.Since(start)
	cs.record(elapsed, len(content), len(text))
	b.logger.Debug("message exchanged",
		"conversation_id", cs.id, "role", string(role), "duration", elapsed)
	return text, nil
}

// normalizeContent flattens a response payload into one string. This is the
// protocol-level validation step: a shape that is neither plain text nor a
// part sequence is a generation failure regardless of what the driver
// reported.
func normalizeContent(c spec.Content) (string, error) {
	switch v := c.(type) {
	case spec.Text:
		return string(v), nil
	case spec.Parts:
		var sb strings.Builder
		for _, part := range v {
			if part.Kind != spec.PartText {
				continue
			}
			sb.WriteString(part.Text)
		}
		return sb.String(), nil
	default:
		return "", &spec.GenerationError{
			Stage: "normalize",
			Err:   fmt.Errorf("invalid response format: content is neither text nor a part sequence"),
		}
	}
}
