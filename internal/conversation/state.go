package conversation

// State names the branch that produced an event's replies.
type State string

const (
	StateGreeting State = "GREETING_REPLY"
	StateClosing  State = "CLOSING_REPLY"
	StateDetail   State = "DETAIL_REPLY"
	StateGallery  State = "GALLERY_REPLY"
	StateSearch   State = "SEARCH_REPLY"
	StateFallback State = "FALLBACK_REPLY"
)
