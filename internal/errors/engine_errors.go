package errors

import "fmt"

// ErrorCategory classifies engine failures. Indicator and rule level
// anomalies (insufficient history, missing rails thresholds, numeric
// degeneracies) never become errors at all; only the categories below
// surface to callers.
type ErrorCategory string

const (
	// ErrorCategoryFormat marks a malformed TXYZN code. This is a
	// data-integrity failure and must not be swallowed.
	ErrorCategoryFormat ErrorCategory = "FORMAT"
	// ErrorCategoryValidation marks malformed input data such as a bar
	// with high below its body.
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	// ErrorCategoryConfig marks an unusable configuration file.
	ErrorCategoryConfig ErrorCategory = "CONFIG"
	// ErrorCategoryStorage marks signal persistence failures.
	ErrorCategoryStorage ErrorCategory = "STORAGE"
	// ErrorCategoryData marks feed/provider failures.
	ErrorCategoryData ErrorCategory = "DATA"
)

// EngineError is a categorized error with component context.
type EngineError struct {
	Category   ErrorCategory
	Component  string
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Component, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Component, e.Message)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// New creates a categorized engine error.
func New(category ErrorCategory, component, format string, args ...interface{}) *EngineError {
	return &EngineError{
		Category:  category,
		Component: component,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Wrap attaches category and component context to an existing error.
// It returns nil for a nil error.
func Wrap(err error, category ErrorCategory, component, format string, args ...interface{}) *EngineError {
	if err == nil {
		return nil
	}
	return &EngineError{
		Category:   category,
		Component:  component,
		Message:    fmt.Sprintf(format, args...),
		Underlying: err,
	}
}

// IsCategory reports whether err is an EngineError of the given
// category, unwrapping as needed.
func IsCategory(err error, category ErrorCategory) bool {
	for err != nil {
		if ee, ok := err.(*EngineError); ok && ee.Category == category {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
