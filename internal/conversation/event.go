// README: Conversation orchestration; one inbound event in, reply units out, no session state.
package conversation

// Kind classifies an inbound interaction.
type Kind string

const (
	KindText    Kind = "TEXT"
	KindButton  Kind = "BUTTON"
	KindList    Kind = "LIST"
	KindUnknown Kind = "UNKNOWN"
)

// Event is the channel-independent form of one inbound interaction.
type Event struct {
	ID       string
	SenderID string
	Kind     Kind
	// RawText is the message body, or the title of the selected button or list row.
	RawText  string
	ActionID string
}
