package whatsapp

import (
	"strings"

	"github.com/viniciusalbino/autoAtendeAI/internal/conversation"
)

// Inbound is one customer message together with the business number it was sent to.
type Inbound struct {
	Event          conversation.Event
	BusinessNumber string
	PhoneNumberID  string
}

// Events flattens every message in p. Status-only payloads yield none.
func Events(p WebhookPayload) []Inbound {
	var out []Inbound
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				out = append(out, Inbound{
					Event:          ToEvent(msg),
					BusinessNumber: change.Value.Metadata.DisplayPhoneNumber,
					PhoneNumberID:  change.Value.Metadata.PhoneNumberID,
				})
			}
		}
	}
	return out
}

// ToEvent maps a WhatsApp message onto the conversation model.
func ToEvent(m Message) conversation.Event {
	ev := conversation.Event{ID: m.ID, SenderID: m.From, Kind: conversation.KindUnknown}
	switch m.Type {
	case "text":
		ev.Kind = conversation.KindText
		if m.Text != nil {
			ev.RawText = strings.TrimSpace(m.Text.Body)
		}
	case "interactive":
		if m.Interactive == nil {
			break
		}
		switch {
		case m.Interactive.Type == "button_reply" && m.Interactive.ButtonReply != nil:
			ev.Kind = conversation.KindButton
			ev.ActionID = m.Interactive.ButtonReply.ID
			ev.RawText = strings.TrimSpace(m.Interactive.ButtonReply.Title)
		case m.Interactive.Type == "list_reply" && m.Interactive.ListReply != nil:
			ev.Kind = conversation.KindList
			ev.ActionID = m.Interactive.ListReply.ID
			ev.RawText = strings.TrimSpace(m.Interactive.ListReply.Title)
		}
	}
	return ev
}
