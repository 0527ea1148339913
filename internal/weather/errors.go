package weather

import (
	"errors"
	"fmt"
)

// Kind classifies a lookup failure. Only logging distinguishes kinds; the
// widget state carries the user message alone.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindProvider
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindProvider:
		return "provider"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgEmptyLocation      = "Please enter a city"
	MsgTransport          = "Failed to fetch data. Please check your internet connection."
	MsgConditionsNotFound = "City not found for current weather."
	MsgForecastNotFound   = "City not found for forecast."
)

// Error is a lookup failure with a message safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports unusable user input.
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ProviderError reports a non-success code in the provider payload. An empty
// message is replaced by fallback.
func ProviderError(msg, fallback string) *Error {
	if msg == "" {
		msg = fallback
	}
	return &Error{Kind: KindProvider, Message: msg}
}

// TransportError wraps a network or decoding failure behind a fixed message.
func TransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Message: MsgTransport, Err: cause}
}

// UserMessage returns the text to display for err. Unclassified errors are
// treated as transport failures so their details never reach the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return MsgTransport
}

// KindOf returns the Kind of err, defaulting to KindTransport.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}
