package icebreaker

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
)

// Kind classifies a failed generation for the caller.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindUpstream      Kind = "upstream_unavailable"
	KindMisconfigured Kind = "misconfigured"
	KindInternal      Kind = "internal_error"
)

// Side names the party a profile error belongs to.
type Side string

const (
	SideSender   Side = "sender"
	SideReceiver Side = "receiver"
)

// Request field names, as sent by clients.
const (
	FieldSenderURL   = "senderUrl"
	FieldReceiverURL = "receiverUrl"
	FieldObjective   = "proposal"
)

// Error is the only error type Generate returns.
type Error struct {
	Kind    Kind
	Side    Side   // set for profile failures
	Field   string // set for invalid input
	Message string // safe to show to clients
	Err     error  // underlying cause, for logs only
}

func (e *Error) Error() string {
	msg := string(e.Kind) + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func invalidInput(field, msg string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: msg}
}

// classify maps collaborator errors onto a Kind.
func classify(err error) Kind {
	switch {
	case errors.Is(err, domain.ErrMisconfigured):
		return KindMisconfigured
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound
	case errors.Is(err, domain.ErrUpstream),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindUpstream
	default:
		return KindInternal
	}
}

func profileError(side Side, err error) *Error {
	kind := classify(err)
	var msg string
	switch kind {
	case KindNotFound:
		msg = fmt.Sprintf("%s profile not found", side)
	case KindMisconfigured:
		msg = "profile data provider is not configured"
	case KindUpstream:
		msg = fmt.Sprintf("could not fetch %s profile", side)
	default:
		msg = fmt.Sprintf("unexpected error while fetching %s profile", side)
	}
	return &Error{Kind: kind, Side: side, Message: msg, Err: err}
}

func completionError(err error) *Error {
	kind := classify(err)
	var msg string
	switch kind {
	case KindMisconfigured:
		msg = "model provider is not configured"
	case KindUpstream, KindNotFound:
		kind = KindUpstream
		msg = "model provider did not return a usable reply"
	default:
		msg = "unexpected error while generating messages"
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}
