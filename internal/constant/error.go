package constant

import "fmt"

// Error is the coded error contract returned by every service operation.
type Error interface {
	error
	Code() int
	Message() string
	WithData(data interface{}) Error
}

type CustomError struct {
	code    int
	message string
	data    interface{}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

func (e *CustomError) WithData(data interface{}) Error {
	e.data = data
	return e
}

func (e *CustomError) Data() interface{} {
	return e.data
}

// NewError builds a coded error from the message table.
func NewError(code int) Error {
	if msg, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: msg}
	}
	return &CustomError{code: code, message: "unknown error"}
}

// NewErrorf builds a coded error with extra context appended to the base message.
func NewErrorf(code int, format string, args ...interface{}) Error {
	base := ErrorMessages[code]
	if base == "" {
		base = "unknown error"
	}
	return &CustomError{code: code, message: base + ": " + fmt.Sprintf(format, args...)}
}

// CodeOf extracts the business code from err, or CodeSystemError for plain errors.
func CodeOf(err error) int {
	if err == nil {
		return CodeSuccess
	}
	if ce, ok := err.(Error); ok {
		return ce.Code()
	}
	return CodeSystemError
}

func GetErrorInfo(code int) (string, bool) {
	msg, exists := ErrorMessages[code]
	return msg, exists
}
