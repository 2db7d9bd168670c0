package entity

import (
	"encoding/json"
	"strings"
)

// HandlerType identifies which delivery channel implementation applies.
type HandlerType string

const (
	HandlerTypeEmail HandlerType = "email"
)

// handlerTypes is the immutable reference data seeded into handler_type.
var handlerTypes = []HandlerType{HandlerTypeEmail}

// HandlerTypes returns the known handler types in seed order.
func HandlerTypes() []HandlerType {
	out := make([]HandlerType, len(handlerTypes))
	copy(out, handlerTypes)
	return out
}

// IsValid reports whether t is part of the reference data.
func (t HandlerType) IsValid() bool {
	for _, ht := range handlerTypes {
		if ht == t {
			return true
		}
	}
	return false
}

func (t HandlerType) String() string { return string(t) }

// Settings is an opaque, channel specific configuration blob.
type Settings map[string]any

// IsEmpty reports whether the blob carries no keys. A nil blob is empty.
func (s Settings) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns a shallow copy so callers cannot mutate a stored blob.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// MarshalSettings encodes a blob for storage. nil encodes as SQL NULL (nil).
func MarshalSettings(s Settings) (*string, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	str := string(b)
	return &str, nil
}

// UnmarshalSettings decodes a stored blob. NULL, "" and "null" decode to nil.
func UnmarshalSettings(raw *string) (Settings, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	var s Settings
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, err
	}
	return s, nil
}

// GlobalSetting is the fallback configuration of one handler type.
type GlobalSetting struct {
	Type     HandlerType
	Settings Settings
}

// Handler binds a topic to a channel type and an optional settings override.
type Handler struct {
	Topic    string      `json:"topic"`
	Type     HandlerType `json:"-"`
	Settings Settings    `json:"settings"`
}

// NormalizeTopic returns the storage form of a topic.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// ValidateTopic checks a normalized topic. Topics name a directory under the
// attachment root, so path separators and dot entries are rejected.
func ValidateTopic(topic string) error {
	if topic == "" {
		return MissingAttribute("Required attribute: topic")
	}
	if strings.ContainsAny(topic, `/\`) || topic == "." || topic == ".." {
		return BadRequest("invalid topic %q", topic)
	}
	return nil
}
