// Copyright (C) 2025 SAP Transformation Platform Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package session

import (
	"errors"
	"fmt"
)

// ErrMutationInFlight is returned when a second mutation is attempted while
// one is still unresolved. The UI convention is to disable the triggering
// control for the duration of the in-flight call; this error is the
// programmatic backstop for the same rule.
var ErrMutationInFlight = errors.New("a mutation is already in flight")

// ErrNotLoaded is returned when a mutation is attempted before a successful
// load.
var ErrNotLoaded = errors.New("session has no loaded hierarchy")

// ValidationError is a locally detected, pre-network rejection. When one is
// returned, no API call was made and the session state is unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
