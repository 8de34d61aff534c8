package maelstrom

import (
	"errors"
	"fmt"
)

// Maelstrom error code constants. The node never sends error replies; codes
// classify the failure that stopped the message loop.
const (
	NotSupported     = 10
	MalformedRequest = 12
	Crash            = 13
)

// ErrorCodeText returns the text representation of an error code.
func ErrorCodeText(code int) string {
	switch code {
	case NotSupported:
		return "NotSupported"
	case MalformedRequest:
		return "MalformedRequest"
	case Crash:
		return "Crash"
	default:
		return fmt.Sprintf("ErrorCode<%d>", code)
	}
}

// ErrorCode returns the code of the first *RPCError in err's chain.
// Returns -1 if there is none.
func ErrorCode(err error) int {
	var e *RPCError
	if errors.As(err, &e) {
		return e.Code
	}
	return -1
}

// RPCError represents a Maelstrom error.
type RPCError struct {
	Code int
	Text string
}

// NewRPCError returns a new instance of RPCError.
func NewRPCError(code int, text string) *RPCError {
	return &RPCError{
		Code: code,
		Text: text,
	}
}

// Error returns a string-formatted error message.
func (e *RPCError) Error() string {
	return fmt.Sprintf("RPCError(%s, %q)", ErrorCodeText(e.Code), e.Text)
}
