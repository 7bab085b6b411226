// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrConfig is the base error for configuration failures. These are
	// raised before any network call is made.
	ErrConfig = errors.New("configuration error")

	// ErrMissingSetting indicates a required setting was absent or blank in
	// every configuration source.
	ErrMissingSetting = fmt.Errorf("%w: missing setting", ErrConfig)

	// ErrInvalidSetting indicates a setting was present but could not be parsed.
	ErrInvalidSetting = fmt.Errorf("%w: invalid setting", ErrConfig)

	// ErrService is the base error for backend service failures.
	ErrService = errors.New("service error")

	// ErrContentFilter indicates the request was rejected by a content filter.
	ErrContentFilter = fmt.Errorf("%w: content filter", ErrService)

	// ErrInvalidRequest indicates the request was malformed or invalid.
	ErrInvalidRequest = fmt.Errorf("%w: invalid request", ErrService)

	// ErrInvalidResponse indicates the service returned an unexpected response.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response", ErrService)

	// ErrNotFound indicates the addressed remote resource does not exist.
	ErrNotFound = fmt.Errorf("%w: not found", ErrService)

	// ErrAuth indicates an authentication or authorization failure, including
	// failure to acquire a token from the credential provider.
	ErrAuth = fmt.Errorf("%w: authentication", ErrService)

	// ErrRun is the base error for agent run failures.
	ErrRun = errors.New("run error")

	// ErrPollTimeout indicates a run did not reach a terminal status within
	// the poll budget.
	ErrPollTimeout = fmt.Errorf("%w: poll timeout", ErrRun)

	// ErrRequiredAction indicates a run is waiting on an action the client
	// cannot perform, such as returning outputs for locally executed tools.
	ErrRequiredAction = fmt.Errorf("%w: unsupported required action", ErrRun)
)

// ServiceError provides rich context for backend service failures.
// Use errors.As to extract it from a wrapped error chain.
type ServiceError struct {
	StatusCode int
	Message    string
	Code       string
	RequestID  string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("service error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("service error %d: %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }
