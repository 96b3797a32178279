package validation

import (
	"fmt"
	"strings"

	pkgerrors "github.com/finchmedia/finch/pkg/errors"
)

// Error is a single human-readable invariant violation.
type Error struct {
	Message string
}

// NewError creates a validation error with the given message.
func NewError(message string) Error {
	return Error{Message: message}
}

// Handler collects invariant violations found while validating an
// aggregate or a command. Implementations decide whether to accumulate
// every violation (Notification) or stop at the first one (FailFast);
// call sites pick the variant they need.
type Handler interface {
	// Append records one or more violations.
	Append(errs ...Error)

	// Merge folds another handler's violations into this one.
	Merge(other Handler)

	// Check runs fn and folds any failure it returns into the handler.
	// A grouped validation error contributes every message it carries;
	// any other error contributes its message as a single violation.
	Check(fn func() error)

	// HasErrors reports whether any violation was recorded.
	HasErrors() bool

	// Errors returns the recorded violations in encounter order.
	Errors() []Error

	// First returns the first recorded violation, or nil.
	First() *Error
}

// Messages flattens the handler's violations into their messages.
func Messages(h Handler) []string {
	errs := h.Errors()
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return messages
}

// AsError converts the handler's violations into a grouped validation
// error, or nil when no violation was recorded.
func AsError(h Handler, context string) error {
	if !h.HasErrors() {
		return nil
	}
	return pkgerrors.ValidationWithContext(context, Messages(h))
}

// CheckStringLength appends violations when value is blank or its
// trimmed length exceeds max characters.
func CheckStringLength(h Handler, field, value string, max int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		h.Append(NewError(fmt.Sprintf("'%s' should not be empty", field)))
		return
	}
	if len([]rune(trimmed)) > max {
		h.Append(NewError(fmt.Sprintf("'%s' must be between 1 and %d characters", field, max)))
	}
}

// fold translates an error returned by a validation closure into
// violations.
func fold(err error) []Error {
	if err == nil {
		return nil
	}
	if messages := pkgerrors.ValidationMessages(err); messages != nil {
		errs := make([]Error, len(messages))
		for i, m := range messages {
			errs[i] = NewError(m)
		}
		return errs
	}
	return []Error{NewError(err.Error())}
}
