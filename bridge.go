package lmbridge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/lmbridge/lmbridge-go/catalog"
	"github.com/lmbridge/lmbridge-go/driver"
	"github.com/lmbridge/lmbridge-go/internal/handles"
	"github.com/lmbridge/lmbridge-go/internal/lasterr"
	"github.com/lmbridge/lmbridge-go/spec"
)

// EngineHandle is an opaque, caller-owned reference to a loaded engine.
// The zero value is never a live handle.
type EngineHandle uint64

// ConversationHandle is an opaque, caller-owned reference to a conversation
// bound to one engine. The zero value is never a live handle.
type ConversationHandle uint64

// Bridge owns every engine and conversation created through it and hands out
// generation-checked handles instead of pointers, so a destroyed handle is a
// detectable error rather than a dangling reference.
//
// Every operation returns its result directly; the LastError accessor is a
// compatibility shim for foreign callers, not the primary error path. No
// operation lets a panic escape.
type Bridge struct {
	logger *slog.Logger
	drv    driver.Driver
	cat    *catalog.Catalog

	engines handles.Table[*engineState]
	convs   handles.Table[*convState]
}

// engineState wraps one driver engine. The underlying engine is
// reference-counted by its live conversations: destroying the engine handle
// invalidates it immediately, but the driver engine closes only once the
// last conversation has been destroyed.
type engineState struct {
	id  string
	eng driver.Engine
	cfg spec.EngineConfig

	mu     sync.Mutex
	refs   int
	doomed bool
	closed bool
}

type convState struct {
	id     string
	conv   driver.Conversation
	engine *engineState

	mu    sync.Mutex
	stats ConversationStats
}

// New builds a Bridge. The driver comes from WithDriver, WithDriverName, or,
// when neither is given, the registry's sole entry; with no driver available
// New fails with spec.ErrNotInitialized.
func New(opts ...Option) (*Bridge, error) {
	o := bridgeOptions{logger: slog.Default()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	drv := o.drv
	if drv == nil && o.driverName != "" {
		d, ok := lookupDriver(o.driverName)
		if !ok {
			return nil, fmt.Errorf("%w: unknown driver %q", spec.ErrNotInitialized, o.driverName)
		}
		drv = d
	}
	if drv == nil {
		if d, ok := soleDriver(); ok {
			drv = d
		}
	}
	if drv == nil {
		return nil, spec.ErrNotInitialized
	}

	return &Bridge{
		logger: o.logger,
		drv:    drv,
		cat:    o.catalog,
	}, nil
}

// CreateEngine resolves model assets at modelPath and instantiates an engine
// on the selected backend. The returned handle is owned by the caller and
// must eventually be passed to DestroyEngine exactly once.
func (b *Bridge) CreateEngine(ctx context.Context, modelPath string, backend spec.Backend) (h EngineHandle, err error) {
	defer b.guard("create engine", &err)

	if modelPath == "" {
		return 0, fmt.Errorf("%w: model path is empty", spec.ErrInvalidArgument)
	}
	if err := resolveModelAssets(modelPath); err != nil {
		return 0, &spec.ModelLoadError{Path: modelPath, Err: err}
	}
	if !backend.Valid() {
		return 0, &spec.ModelLoadError{Path: modelPath, Err: fmt.Errorf("unknown backend selector %d", backend)}
	}

	cfg := spec.EngineConfig{ModelPath: modelPath, Backend: backend}
	eng, err := b.drv.Open(ctx, cfg)
	if err != nil {
		return 0, &spec.ModelLoadError{Path: modelPath, Err: err}
	}

	es := &engineState{
		id:  uuid.Must(uuid.NewV7()).String(),
		eng: eng,
		cfg: cfg,
	}
	h = EngineHandle(b.engines.Put(es))
	b.logger.Info("engine created",
		"engine_id", es.id, "model_path", modelPath, "backend", backend.String())
	return h, nil
}

// CreateEngineFromCatalog resolves a model by catalog name and creates an
// engine from its manifest entry. Requires WithCatalog.
func (b *Bridge) CreateEngineFromCatalog(ctx context.Context, name string) (h EngineHandle, err error) {
	defer b.guard("create engine from catalog", &err)

	if name == "" {
		return 0, fmt.Errorf("%w: model name is empty", spec.ErrInvalidArgument)
	}
	if b.cat == nil {
		return 0, fmt.Errorf("no model catalog configured")
	}
	m, ok := b.cat.Resolve(name)
	if !ok {
		return 0, &spec.ModelLoadError{Path: name, Err: fmt.Errorf("model %q not in catalog", name)}
	}
	return b.CreateEngine(ctx, m.Path, m.EngineBackend())
}

// DestroyEngine invalidates h. The zero handle, a stale handle, and a repeat
// destroy are all safe no-ops. If conversations created from this engine are
// still live, the underlying driver engine stays open until the last of them
// is destroyed; h itself is unusable immediately.
func (b *Bridge) DestroyEngine(h EngineHandle) {
	defer b.quiet("destroy engine")

	es, ok := b.engines.Remove(handles.Handle(h))
	if !ok {
		return
	}

	es.mu.Lock()
	if es.refs > 0 {
		es.doomed = true
		es.mu.Unlock()
		b.logger.Info("engine destroy deferred", "engine_id", es.id, "live_conversations", es.refs)
		return
	}
	es.closed = true
	es.mu.Unlock()

	b.closeEngine(es)
}

// CreateConversation opens a session against the engine at h. A non-empty
// systemInstruction is installed as a single system-role preface message;
// an empty instruction and no instruction are equivalent.
func (b *Bridge) CreateConversation(ctx context.Context, h EngineHandle, systemInstruction string) (ch ConversationHandle, err error) {
	defer b.guard("create conversation", &err)

	es, ok := b.engines.Get(handles.Handle(h))
	if !ok {
		return 0, spec.ErrEngineNotFound
	}
	if !es.acquire() {
		return 0, spec.ErrEngineNotFound
	}

	var cfg spec.ConversationConfig
	if systemInstruction != "" {
		cfg.Preface = []spec.Message{spec.TextMessage(spec.RoleSystem, systemInstruction)}
	}

	conv, err := es.eng.NewConversation(ctx, cfg)
	if err != nil {
		b.release(es)
		return 0, fmt.Errorf("failed to create conversation: %w", err)
	}

	cs := &convState{
		id:     uuid.Must(uuid.NewV7()).String(),
		conv:   conv,
		engine: es,
	}
	ch = ConversationHandle(b.convs.Put(cs))
	b.logger.Debug("conversation created",
		"conversation_id", cs.id, "engine_id", es.id, "has_system_instruction", systemInstruction != "")
	return ch, nil
}

// DestroyConversation invalidates h and closes the session. The zero handle,
// a stale handle, and a repeat destroy are all safe no-ops.
func (b *Bridge) DestroyConversation(h ConversationHandle) {
	defer b.quiet("destroy conversation")

	cs, ok := b.convs.Remove(handles.Handle(h))
	if !ok {
		return
	}

	if err := cs.conv.Close(); err != nil {
		b.logger.Warn("conversation close failed", "conversation_id", cs.id, "error", err)
	}
	b.logger.Debug("conversation destroyed", "conversation_id", cs.id)
	b.release(cs.engine)
}

// EngineConfig reports the configuration the engine at h was created with.
func (b *Bridge) EngineConfig(h EngineHandle) (spec.EngineConfig, error) {
	es, ok := b.engines.Get(handles.Handle(h))
	if !ok {
		return spec.EngineConfig{}, spec.ErrEngineNotFound
	}
	return es.cfg, nil
}

// LastError returns the calling OS thread's most recent failure message.
// It is a compatibility shim: prefer the errors returned by each operation.
// The value goes stale after a success; check results, not this string.
func (b *Bridge) LastError() string {
	return lasterr.Get()
}

// acquire takes a conversation reference, failing once the engine handle has
// been destroyed.
func (es *engineState) acquire() bool {
	es.mu.Lock()
	defer es.mu.Unlock()
	if es.doomed || es.closed {
		return false
	}
	es.refs++
	return true
}

// release drops a conversation reference and closes a doomed engine when the
// last reference goes away.
func (b *Bridge) release(es *engineState) {
	es.mu.Lock()
	es.refs--
	shouldClose := es.doomed && es.refs == 0 && !es.closed
	if shouldClose {
		es.closed = true
	}
	es.mu.Unlock()

	if shouldClose {
		b.closeEngine(es)
	}
}

func (b *Bridge) closeEngine(es *engineState) {
	if err := es.eng.Close(); err != nil {
		b.logger.Warn("engine close failed", "engine_id", es.id, "error", err)
		return
	}
	b.logger.Info("engine destroyed", "engine_id", es.id)
}

// resolveModelAssets checks that the model path names readable assets
// (a file or an asset directory) before the driver is asked to load them.
func resolveModelAssets(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to resolve model assets: %w", err)
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return fmt.Errorf("failed to resolve model assets: %s is not a file or directory", path)
	}
	return nil
}

// guard converts panics from driver code into plain errors and mirrors every
// failure into the per-thread last-error shim. Nothing may propagate as an
// unhandled fault past a Bridge operation.
func (b *Bridge) guard(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: internal fault: %v", op, r)
	}
	if *err != nil {
		lasterr.Set((*err).Error())
	}
}

// quiet is guard for the destroy operations, which never fail.
func (b *Bridge) quiet(op string) {
	if r := recover(); r != nil {
		b.logger.Error("internal fault suppressed", "op", op, "fault", fmt.Sprint(r))
	}
}
