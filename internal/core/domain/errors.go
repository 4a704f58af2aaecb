package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrPollNotFound  = errors.New("poll not found")
	ErrVoteNotFound  = errors.New("voter has not voted on this poll")
	ErrInvalidPollID = fmt.Errorf("%w: invalid poll id", ErrValidation)
	ErrInvalidOption = fmt.Errorf("%w: invalid option for this poll", ErrValidation)
	ErrInternal      = errors.New("internal server error")
)

// Invalid reports a client input error. The result matches ErrValidation.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
