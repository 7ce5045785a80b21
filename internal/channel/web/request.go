// README: Web chat adapter: JSON / websocket chat messages to conversation events.
package web

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/viniciusalbino/autoAtendeAI/internal/conversation"
	"github.com/viniciusalbino/autoAtendeAI/internal/reply"
)

var ErrBadRequest = errors.New("dealership_id, sender_id and text or action_id are required")

// ChatRequest is one message typed (or button clicked) in the web chat widget.
type ChatRequest struct {
	DealershipID int64  `json:"dealership_id"`
	SenderID     string `json:"sender_id"`
	Text         string `json:"text"`
	ActionID     string `json:"action_id,omitempty"`
}

// ChatResponse carries the reply units for one request.
type ChatResponse struct {
	EventID string       `json:"event_id"`
	Replies []reply.Unit `json:"replies"`
}

func (r ChatRequest) Validate() error {
	if r.DealershipID <= 0 || strings.TrimSpace(r.SenderID) == "" {
		return ErrBadRequest
	}
	if strings.TrimSpace(r.Text) == "" && strings.TrimSpace(r.ActionID) == "" {
		return ErrBadRequest
	}
	return nil
}

// ToEvent assigns a fresh event id; a request carrying an action id is a button selection.
func (r ChatRequest) ToEvent() conversation.Event {
	ev := conversation.Event{
		ID:       uuid.NewString(),
		SenderID: strings.TrimSpace(r.SenderID),
		Kind:     conversation.KindText,
		RawText:  strings.TrimSpace(r.Text),
	}
	if id := strings.TrimSpace(r.ActionID); id != "" {
		ev.Kind = conversation.KindButton
		ev.ActionID = id
	}
	return ev
}
