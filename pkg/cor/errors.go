package cor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Construction-time errors. They are always returned wrapped in a
// *ConfigurationError.
var (
	ErrEmptyChain     = errors.New("chain has no head handler")
	ErrSelfLink       = errors.New("handler linked to itself")
	ErrCycle          = errors.New("chain contains a cycle")
	ErrDuplicateName  = errors.New("duplicate handler name")
	ErrFrozen         = errors.New("handler is frozen")
	ErrNilRule        = errors.New("handler has no acceptance predicate")
	ErrInvalidRequest = errors.New("invalid request")
)

// ConfigurationError reports a chain that cannot be traversed safely.
type ConfigurationError struct {
	Handler string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Handler == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error at %q: %v", e.Handler, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// RequestError is returned for a request rejected before it entered the chain.
type RequestError struct {
	RequestId uuid.UUID
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s: %v", e.RequestId, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{ErrInvalidRequest, e.Err}
}

func Misconfigured(handler string, err error) error {
	return &ConfigurationError{Handler: handler, Err: err}
}

func Invalid(requestId uuid.UUID, err error) error {
	if err == nil {
		err = ErrInvalidRequest
	}
	return &RequestError{RequestId: requestId, Err: err}
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func IsNil(i interface{}) bool {
	if i == nil || (reflect.ValueOf(i).Kind() == reflect.Ptr && reflect.ValueOf(i).IsNil()) {
		return true
	}
	return false
}

func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}
