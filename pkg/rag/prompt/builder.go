package prompt

import (
	"strings"

	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/search"
	"rag-chat-be/pkg/store"
)

// HistoryLimit is how many stored turns the prompt may carry. Truncation is
// read-side only: the conversation store keeps the full sequence.
const HistoryLimit = 5

// contextSeparator joins retrieved passages in index order.
const contextSeparator = "\n\n"

const systemInstruction = "You are a helpful AI assistant. " +
	"Answer the user's question based on the provided context. " +
	"If the context doesn't contain relevant information, say so politely. " +
	"Keep your answers clear and concise."

// Builder assembles the completion message list for one query: a fixed
// system instruction, the most recent conversation turns, and a final user
// message carrying the retrieved context and the question.
type Builder struct {
	history []store.Turn
	results []search.Result
	query   string
}

func NewBuilder(history []store.Turn, results []search.Result, query string) *Builder {
	return &Builder{
		history: history,
		results: results,
		query:   query,
	}
}

// Context joins the retrieved document contents in the order the index
// returned them. Empty when nothing was retrieved.
func (b *Builder) Context() string {
	if len(b.results) == 0 {
		return ""
	}
	parts := make([]string, len(b.results))
	for i, r := range b.results {
		parts[i] = r.Document.Content
	}
	return strings.Join(parts, contextSeparator)
}

// Messages renders the full message list for the completion provider.
func (b *Builder) Messages() []llm.Message {
	messages := make([]llm.Message, 0, HistoryLimit+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: systemInstruction,
	})

	for _, turn := range b.recentHistory() {
		role := "user"
		if turn.Role == store.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: turn.Text,
		})
	}

	messages = append(messages, llm.Message{
		Role:    "user",
		Content: b.userMessage(),
	})
	return messages
}

// recentHistory keeps at most the HistoryLimit most recent turns.
func (b *Builder) recentHistory() []store.Turn {
	if len(b.history) <= HistoryLimit {
		return b.history
	}
	return b.history[len(b.history)-HistoryLimit:]
}

func (b *Builder) userMessage() string {
	var msg strings.Builder
	if ctx := b.Context(); ctx != "" {
		msg.WriteString("Context:\n")
		msg.WriteString(ctx)
		msg.WriteString("\n\n")
	}
	msg.WriteString("Question: ")
	msg.WriteString(b.query)
	return msg.String()
}
