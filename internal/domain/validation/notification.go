package validation

// Notification is the accumulating Handler: it records every violation
// it sees and never fails mid-accumulation. Use-case orchestration uses
// it so callers see all problems at once.
type Notification struct {
	errs []Error
}

// NewNotification creates an empty notification.
func NewNotification() *Notification {
	return &Notification{}
}

// Append records one or more violations.
func (n *Notification) Append(errs ...Error) {
	n.errs = append(n.errs, errs...)
}

// Merge folds another handler's violations into this one.
func (n *Notification) Merge(other Handler) {
	n.errs = append(n.errs, other.Errors()...)
}

// Check runs fn and folds any failure into the notification instead of
// propagating it.
func (n *Notification) Check(fn func() error) {
	n.Append(fold(fn())...)
}

// HasErrors reports whether any violation was recorded.
func (n *Notification) HasErrors() bool {
	return len(n.errs) > 0
}

// Errors returns the recorded violations in encounter order.
func (n *Notification) Errors() []Error {
	return n.errs
}

// First returns the first recorded violation, or nil.
func (n *Notification) First() *Error {
	if len(n.errs) == 0 {
		return nil
	}
	return &n.errs[0]
}
