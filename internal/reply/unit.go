// README: Channel-agnostic reply units and the customer-facing texts that fill them.
package reply

// Action is a selectable follow-up. ID round-trips through the channel unchanged.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Unit is one outbound message: text, an optional image URL and optional actions.
type Unit struct {
	Text    string   `json:"text"`
	Image   string   `json:"image,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// Text wraps s in a plain text unit.
func Text(s string) Unit {
	return Unit{Text: s}
}
