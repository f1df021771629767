package mail

import "errors"

var (
	// ErrDisabled is returned by Send when outgoing mail is switched off.
	ErrDisabled = errors.New("mail is disabled")

	// ErrNoRecipient is returned by Send for a message without recipient.
	ErrNoRecipient = errors.New("mail has no recipient")
)
