package apperrors

import "errors"

var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrUnauthorized   = errors.New("missing or invalid credentials")
	ErrSourceFetch    = errors.New("knowledge source fetch failed")
	ErrNoModelContent = errors.New("model returned no content")
)
