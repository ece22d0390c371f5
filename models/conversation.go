package models

type MessageSender string

const (
	MessageFromUser MessageSender = "user"
	MessageFromLead MessageSender = "lead"
)

// Message is one entry in a lead's thread. The first message's subject,
// when present, is used as the thread title.
type Message struct {
	ID        string        `json:"id"`
	From      MessageSender `json:"from"`
	Subject   string        `json:"subject,omitempty"`
	Body      string        `json:"body"`
	Timestamp string        `json:"timestamp"`
}

// Conversation is the append-only message thread with one lead.
// At most one conversation exists per lead.
type Conversation struct {
	LeadID   string    `json:"leadId"`
	Messages []Message `json:"messages"`
}
