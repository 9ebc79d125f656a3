package observability

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// RecoverError recovers from a panic, logs it with the stack trace and stores
// it as an error in *err.
//
// Usage in defer statements:
//
//	func render(d *ngdoc.Doc) (page string, err error) {
//	    defer observability.RecoverError(logger, "render "+d.FullID(), &err)
//	    return d.HTML()
//	}
//
// Without a panic, *err is left untouched.
func RecoverError(logger logrus.FieldLogger, context string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"panic":   r,
		"stack":   string(debug.Stack()),
		"context": context,
	}).Error("PANIC recovered")
	*err = fmt.Errorf("%s: %w", context, MustRecover(r))
}

// MustRecover converts a recovered panic value to an error. A nil value
// returns nil.
func MustRecover(r interface{}) error {
	if r != nil {
		return fmt.Errorf("panic: %v", r)
	}
	return nil
}
