package memory

import (
	"maps"
	"strings"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

const (
	ProfileKey   = "profile"
	KnowledgeKey = "knowledge"
)

const (
	userLabel  = "Customer"
	agentLabel = "AI"
)

// ConversationMemory holds the turn history and context buckets of one call.
// It is owned by the call goroutine and is not safe for concurrent use.
type ConversationMemory struct {
	context map[string]map[string]string
	turns   []contractx.Turn
}

func New() *ConversationMemory {
	return &ConversationMemory{
		context: map[string]map[string]string{
			ProfileKey:   {},
			KnowledgeKey: {},
		},
		turns: make([]contractx.Turn, 0, 16),
	}
}

func (m *ConversationMemory) AddUserMessage(text string) {
	m.turns = append(m.turns, contractx.Turn{Role: contractx.RoleUser, Content: text})
}

func (m *ConversationMemory) AddAgentMessage(text string) {
	m.turns = append(m.turns, contractx.Turn{Role: contractx.RoleAgent, Content: text})
}

// History renders every turn on its own line in insertion order.
func (m *ConversationMemory) History() string {
	var b strings.Builder
	for _, t := range m.turns {
		label := agentLabel
		if t.Role == contractx.RoleUser {
			label = userLabel
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

// Turns returns a copy of the recorded turns.
func (m *ConversationMemory) Turns() []contractx.Turn {
	return append([]contractx.Turn(nil), m.turns...)
}

func (m *ConversationMemory) Len() int {
	return len(m.turns)
}

// SetContext replaces a context bucket with a copy of data.
func (m *ConversationMemory) SetContext(key string, data map[string]string) {
	m.context[key] = maps.Clone(data)
}

// Context returns the bucket stored under key, or def when absent.
func (m *ConversationMemory) Context(key string, def map[string]string) map[string]string {
	data, ok := m.context[key]
	if !ok {
		return def
	}
	return maps.Clone(data)
}
