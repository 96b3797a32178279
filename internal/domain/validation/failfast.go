package validation

// FailFast is the short-circuiting Handler: it keeps only the first
// violation, and Check closures after a recorded violation are skipped.
// Used where only the first problem matters.
type FailFast struct {
	err *Error
}

// NewFailFast creates an empty fail-fast handler.
func NewFailFast() *FailFast {
	return &FailFast{}
}

// Append records the first violation and drops the rest.
func (f *FailFast) Append(errs ...Error) {
	if f.err != nil || len(errs) == 0 {
		return
	}
	err := errs[0]
	f.err = &err
}

// Merge folds the first violation of another handler into this one.
func (f *FailFast) Merge(other Handler) {
	f.Append(other.Errors()...)
}

// Check runs fn unless a violation was already recorded.
func (f *FailFast) Check(fn func() error) {
	if f.err != nil {
		return
	}
	f.Append(fold(fn())...)
}

// HasErrors reports whether a violation was recorded.
func (f *FailFast) HasErrors() bool {
	return f.err != nil
}

// Errors returns the recorded violation, if any.
func (f *FailFast) Errors() []Error {
	if f.err == nil {
		return nil
	}
	return []Error{*f.err}
}

// First returns the recorded violation, or nil.
func (f *FailFast) First() *Error {
	return f.err
}
