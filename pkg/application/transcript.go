package application

// Sender identifies who a transcript message belongs to.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// MessageKind tells the renderer how to style a transcript line.
type MessageKind string

const (
	KindGreeting MessageKind = "greeting"
	KindQuestion MessageKind = "question"
	KindAnswer   MessageKind = "answer"
	KindSkipped  MessageKind = "skipped"
	KindSummary  MessageKind = "summary"
	KindStatus   MessageKind = "status"
	KindError    MessageKind = "error"
)

// Message is one entry of the chat-style transcript.
type Message struct {
	Sender Sender
	Kind   MessageKind
	Text   string
	// Lines holds list items (summary answers).
	Lines []string
}

// Transcript is an append-only chat log.
type Transcript struct {
	messages []Message
}

func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

func (t *Transcript) Reset() {
	t.messages = nil
}

// Messages returns a copy of the log.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
