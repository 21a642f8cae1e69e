// Copyright 2023 Princess B33f Heavy Industries
// SPDX-License-Identifier: MIT

package dump

import (
	"errors"
	"fmt"
	"strings"
)

// MultiError accumulates every problem found during pre-flight spec
// validation (see Validate) rather than stopping at the first one — the
// opposite discipline from a real dump run, which is fatal-and-immediate
// by design (dumperrors). A *MultiError wraps zero or more errors and
// itself satisfies the error interface, flattening any MultiError
// appended into it rather than nesting.
type MultiError struct {
	errs []error
}

func (e *MultiError) Append(err error) {
	if err == nil {
		return
	}
	var m *MultiError
	if errors.As(err, &m) {
		e.errs = append(e.errs, m.errs...)
		return
	}
	e.errs = append(e.errs, err)
}

func (e *MultiError) Count() int {
	return len(e.errs)
}

func (e *MultiError) Error() string {
	var b strings.Builder
	for i, err := range e.errs {
		b.WriteString(fmt.Sprintf("[%d] %s\n", i, err.Error()))
	}
	return b.String()
}

func (e *MultiError) Unwrap() []error {
	return e.errs
}

// OrNil returns e, or nil if e accumulated no errors. A bare *MultiError
// is non-nil even when empty, so a Validate caller must go through OrNil
// rather than comparing the return value to nil directly.
func (e *MultiError) OrNil() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}
