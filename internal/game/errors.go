package game

import (
	"errors"
	"fmt"
)

// Kind classifies why a call was rejected. Every engine method fails
// atomically with exactly one kind; callers map kinds to replies.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindState
	KindValidation
	KindQuota
	KindBanned
	KindEmptyWithdrawal
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindState:
		return "state"
	case KindValidation:
		return "validation"
	case KindQuota:
		return "quota_exceeded"
	case KindBanned:
		return "banned"
	case KindEmptyWithdrawal:
		return "empty_withdrawal"
	}
	return "unknown"
}

// Error is a rejected precondition. Reason is a short human-readable
// message safe to show to the player.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the rejection kind, or KindUnknown for wrapped
// infrastructure errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}
