package domain

import "errors"

// Provider error sentinels. Collaborators wrap them with %w so callers can
// branch with errors.Is without knowing the transport.
var (
	// ErrMisconfigured means a provider has no API key; no network call was made.
	ErrMisconfigured = errors.New("provider not configured")

	// ErrNotFound means the handle does not resolve to a profile.
	ErrNotFound = errors.New("profile not found")

	// ErrUpstream covers transport failures and unusable provider responses.
	ErrUpstream = errors.New("upstream unavailable")

	// ErrDecode means a provider body did not match the expected shape.
	// It always travels together with ErrUpstream (see DecodeError).
	ErrDecode = errors.New("malformed provider payload")
)

// DecodeError reports a payload that could not be converted into domain values.
type DecodeError struct {
	Resource string // "profile" | "posts"
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode " + e.Resource + ": " + ErrDecode.Error()
	}
	return "decode " + e.Resource + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode, ErrUpstream}
	}
	return []error{ErrDecode, ErrUpstream, e.Err}
}
