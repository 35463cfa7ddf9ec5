package errors

import (
	"encoding/json"
	"fmt"
)

// ErrDataI is an interface for error data that can be set, retrieved, and encoded.
type ErrDataI interface {
	EncodeErrorData() []byte
	Error() string
	GetData(key string) interface{}
	SetData(key string, value interface{})
}

// ErrData is a generic error data structure that implements the ErrDataI interface.
type ErrData map[string]interface{}

// Error returns a string representation of the error data.
func (e *ErrData) Error() string {
	return fmt.Sprintf(" %v", *e)
}

// SetData sets a key-value pair in the error data.
func (e *ErrData) SetData(key string, value interface{}) {
	if e == nil {
		return
	}

	(*e)[key] = value
}

// GetData retrieves the value associated with a key in the error data.
func (e *ErrData) GetData(key string) interface{} {
	if e == nil {
		return nil
	}

	return (*e)[key]
}

// EncodeErrorData encodes the error data to a byte slice using JSON encoding.
func (e *ErrData) EncodeErrorData() []byte {
	// marshal the data to a byte slice using the encoding/json package
	data, err := json.Marshal(e)
	if err != nil {
		// Note: Check if we should log this
		return []byte{}
	}

	return data
}

// TargetErrData is attached to difficulty rejections so callers can log the
// required and the offered target without parsing the message.
type TargetErrData struct {
	Height   uint64 `json:"height"`
	Required string `json:"required"`
	Actual   string `json:"actual"`
}

func (e *TargetErrData) Error() string {
	return fmt.Sprintf("target %s does not meet required %s at height %d", e.Actual, e.Required, e.Height)
}

func (e *TargetErrData) GetData(key string) interface{} {
	switch key {
	case "height":
		return e.Height
	case "required":
		return e.Required
	case "actual":
		return e.Actual
	default:
		return nil
	}
}

func (e *TargetErrData) SetData(key string, value interface{}) {
	switch key {
	case "height":
		if v, ok := value.(uint64); ok {
			e.Height = v
		}
	case "required":
		if v, ok := value.(string); ok {
			e.Required = v
		}
	case "actual":
		if v, ok := value.(string); ok {
			e.Actual = v
		}
	}
}

func (e *TargetErrData) EncodeErrorData() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte{}
	}

	return data
}

// NewBlockInvalidDifficultyErrorWithData returns a difficulty rejection carrying TargetErrData.
func NewBlockInvalidDifficultyErrorWithData(height uint64, required, actual string) error {
	e := New(ERR_BLOCK_INVALID_DIFFICULTY, "[VerifyHeader] target %s above required %s at height %d", actual, required, height)
	e.data = &TargetErrData{Height: height, Required: required, Actual: actual}

	return e
}

// GetErrorData retrieves error data based on the error code and unmarshals it from a byte slice.
func GetErrorData(code ERR, dataBytes []byte) (ErrDataI, error) {
	var errData ErrDataI

	switch code {
	case ERR_BLOCK_INVALID_DIFFICULTY:
		errData = &TargetErrData{}
	default:
		errData = &ErrData{}
	}

	if err := json.Unmarshal(dataBytes, errData); err != nil {
		return errData, err
	}

	return errData, nil
}
