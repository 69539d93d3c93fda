package domain

const (
	MessageUnrecognized     = "Sorry, I did not understand that command."
	MessageRecognitionError = "Sorry, there was an error recognizing your speech."
	MessageMusic            = "Playing music..."
)

// TextCommandPrefix marks capture payloads that already carry a transcript
// and must skip speech-to-text.
const TextCommandPrefix = "__TEXT__:"

// Response is the outcome of one dispatch cycle. Text is empty when the
// action failed and nothing was published.
type Response struct {
	Intent Intent
	Text   string
	OK     bool
}

// ListenState is the capture side of the assistant.
type ListenState string

const (
	StateIdle      ListenState = "idle"
	StateListening ListenState = "listening"
)
