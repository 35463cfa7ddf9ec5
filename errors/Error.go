package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the typed error returned across the engine. Two errors are the same
// kind when their codes match, anywhere along the wrap chain.
type Error struct {
	code       ERR
	message    string
	wrappedErr error
	data       ErrDataI
}

type Interface interface {
	Error() string
	Is(target error) bool
	As(target interface{}) bool
	Unwrap() error

	Code() ERR
	Message() string
	WrappedErr() error
	Data() ErrDataI
}

// Error renders the code, the message and, when present, the wrapped error
// and the attached data.
func (e *Error) Error() string {
	// predefined errors may be wrapped as typed nils
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Error: %s (error code: %d), Message: %v", e.code.Enum(), e.code, e.message)

	if e.wrappedErr != nil {
		fmt.Fprintf(&sb, ", Wrapped err: %v", e.wrappedErr)
	}

	if e.data != nil {
		fmt.Fprintf(&sb, ", Data: %s", e.data.Error())
	}

	return sb.String()
}

// Is reports whether target has the same code as e or as any *Error e wraps.
// A target that is not an *Error matches on its message.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}

	targetError, ok := target.(*Error)
	if !ok {
		return strings.Contains(e.Error(), target.Error())
	}

	for cur := e; cur != nil; {
		if cur.code == targetError.code {
			return true
		}

		next, ok := cur.wrappedErr.(*Error)
		if !ok {
			return false
		}

		cur = next
	}

	return false
}

// As assigns e to an **Error target, otherwise tries the attached data and
// then the wrapped error.
func (e *Error) As(target interface{}) bool {
	if e == nil {
		return false
	}

	if targetErr, ok := target.(**Error); ok {
		*targetErr = e
		return true
	}

	if data, ok := e.data.(error); ok && data != nil && errors.As(data, target) {
		return true
	}

	if e.wrappedErr != nil {
		return errors.As(e.wrappedErr, target)
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *Error) WrappedErr() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Data() ErrDataI {
	if e == nil {
		return nil
	}

	return e.data
}

func (e *Error) SetData(key string, value interface{}) {
	if e.data == nil {
		e.data = &ErrData{}
	}

	e.data.SetData(key, value)
}

func (e *Error) GetData(key string) interface{} {
	if e.data == nil {
		return nil
	}

	return e.data.GetData(key)
}

// New creates an *Error with the given code. When the last param is an error it
// is wrapped rather than used as a format argument.
func New(code ERR, message string, params ...interface{}) *Error {
	var wErr error

	if n := len(params); n > 0 {
		if err, ok := params[n-1].(error); ok {
			params = params[:n-1]

			// a typed nil *Error is not worth wrapping
			if tErr, isTyped := err.(*Error); !isTyped || tErr != nil {
				wErr = err
			}
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	if _, ok := ERR_name[int32(code)]; !ok {
		message = "invalid error code"
	}

	return &Error{
		code:       code,
		message:    message,
		wrappedErr: wErr,
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// AsData finds the first data along the chain of *Error that matches target.
func AsData(err error, target interface{}) bool {
	for err != nil {
		castedErr, ok := err.(*Error)
		if !ok || castedErr == nil {
			return false
		}

		if castedErr.data != nil && errors.As(castedErr.data, target) {
			return true
		}

		err = castedErr.wrappedErr
	}

	return false
}

func As(err error, target any) bool {
	if castedErr, ok := err.(*Error); ok && castedErr.As(target) {
		return true
	}

	return errors.As(err, target)
}
