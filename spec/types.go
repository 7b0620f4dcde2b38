package spec

// Backend selects the execution target for an engine. It is fixed at
// engine-creation time.
type Backend int

const (
	BackendCPU Backend = iota
	BackendGPU
)

// Valid reports whether b is a known backend selector.
func (b Backend) Valid() bool {
	return b == BackendCPU || b == BackendGPU
}

func (b Backend) String() string {
	switch b {
	case BackendCPU:
		return "cpu"
	case BackendGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// ParseBackend maps a manifest string to a Backend. Empty input defaults
// to CPU.
func ParseBackend(s string) (Backend, bool) {
	switch s {
	case "", "cpu", "CPU":
		return BackendCPU, true
	case "gpu", "GPU":
		return BackendGPU, true
	default:
		return BackendCPU, false
	}
}

// Role tags the sender of a message. The boundary does not validate roles
// against a closed set; unknown roles are forwarded to the driver as-is.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// Content is the payload of a Message: either plain text or an ordered
// sequence of typed parts. The two variants are Text and Parts; consumers
// resolve the shape with a type switch.
type Content interface {
	isContent()
}

// Text is plain-string message content.
type Text string

func (Text) isContent() {}

// Parts is structured message content. Only parts whose Kind is PartText
// contribute to normalized output.
type Parts []Part

func (Parts) isContent() {}

// PartText is the Kind of parts that carry renderable text.
const PartText = "text"

// Part is one segment of structured content, tagged with a kind such as
// "text" or "image".
type Part struct {
	Kind string
	Text string
}

// Message is one role-tagged entry in a conversation.
type Message struct {
	Role    Role
	Content Content
}

// TextMessage builds a plain-text message.
func TextMessage(role Role, text string) Message {
	return Message{Role: role, Content: Text(text)}
}

// EngineConfig carries everything a driver needs to instantiate an engine.
type EngineConfig struct {
	// ModelPath points at the resolved model assets. Always non-empty by the
	// time a driver sees it.
	ModelPath string

	Backend Backend
}

// ConversationConfig seeds a new conversation.
type ConversationConfig struct {
	// Preface holds messages injected before any user turn, typically a
	// single system instruction. Nil means no preface.
	Preface []Message
}
