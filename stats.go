package lmbridge

import (
	"time"

	"github.com/lmbridge/lmbridge-go/internal/handles"
	"github.com/lmbridge/lmbridge-go/spec"
)

// TurnStats describes one completed message exchange.
type TurnStats struct {
	Duration      time.Duration
	RequestChars  int
	ResponseChars int
}

// ConversationStats accumulates turn accounting for one conversation. The
// bridge measures wall-clock time around each exchange; token-level figures
// are the engine's business, not the boundary's.
type ConversationStats struct {
	Turns         int
	TotalDuration time.Duration
	ResponseChars int
	LastTurn      TurnStats
}

// AverageTurnDuration returns the mean exchange duration, or zero before the
// first turn.
func (s ConversationStats) AverageTurnDuration() time.Duration {
	if s.Turns == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Turns)
}

// ConversationStats reports accounting for the conversation at h.
func (b *Bridge) ConversationStats(h ConversationHandle) (ConversationStats, error) {
	cs, ok := b.convs.Get(handles.Handle(h))
	if !ok {
		return ConversationStats{}, spec.ErrConversationNotFound
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.stats, nil
}

func (cs *convState) record(d time.Duration, requestChars, responseChars int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.stats.Turns++
	cs.stats.TotalDuration += d
	cs.stats.ResponseChars += responseChars
	cs.stats.LastTurn = TurnStats{
		Duration:      d,
		RequestChars:  requestChars,
		ResponseChars: responseChars,
	}
}
