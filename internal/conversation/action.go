package conversation

import "strings"

const (
	detailPrefix  = "detail-request:"
	galleryPrefix = "more-photos:"

	// DeclineID is the action id of the "no thanks" button.
	DeclineID = "decline"
)

// Action is the command an event resolves to: Detail, Gallery, Decline or FreeText.
type Action interface {
	isAction()
}

type Detail struct{ Model string }

type Gallery struct{ Model string }

type Decline struct{}

type FreeText struct{ Text string }

func (Detail) isAction()   {}
func (Gallery) isAction()  {}
func (Decline) isAction()  {}
func (FreeText) isAction() {}

// DetailID encodes a "tell me more" selection for model.
func DetailID(model string) string {
	return detailPrefix + strings.ToLower(strings.TrimSpace(model))
}

// GalleryID encodes a "see more photos" selection for model.
func GalleryID(model string) string {
	return galleryPrefix + strings.ToLower(strings.TrimSpace(model))
}

// ParseAction resolves ev once at the orchestrator boundary. Structured selections with a
// recognised id become Detail, Gallery or Decline; everything else is FreeText.
func ParseAction(ev Event) Action {
	if ev.Kind == KindButton || ev.Kind == KindList {
		if a, ok := parseActionID(ev.ActionID); ok {
			return a
		}
	}
	return FreeText{Text: ev.RawText}
}

func parseActionID(id string) (Action, bool) {
	id = strings.TrimSpace(id)
	switch {
	case id == DeclineID:
		return Decline{}, true
	case strings.HasPrefix(id, detailPrefix):
		if model := cleanModel(id[len(detailPrefix):]); model != "" {
			return Detail{Model: model}, true
		}
	case strings.HasPrefix(id, galleryPrefix):
		if model := cleanModel(id[len(galleryPrefix):]); model != "" {
			return Gallery{Model: model}, true
		}
	}
	return nil, false
}

func cleanModel(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}
