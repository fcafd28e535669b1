package common

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	InvalidAddress   Kind = "INVALID_ADDRESS"
	FunctionNotFound Kind = "FUNCTION_NOT_FOUND"
	InvalidParameter Kind = "INVALID_PARAMETER"
	EncodingFailed   Kind = "ENCODING_FAILED"
	DecodingFailed   Kind = "DECODING_FAILED"

	// reported by ABI and chain collaborators, forwarded as is
	NetworkError     Kind = "NETWORK_ERROR"
	InvalidAPIKey    Kind = "INVALID_API_KEY"
	ContractNotFound Kind = "CONTRACT_NOT_FOUND"
	ABIFetchFailed   Kind = "ABI_FETCH_FAILED"
	RPCError         Kind = "RPC_ERROR"
)

// Error carries a Kind, a message, the parameter it concerns (for
// INVALID_PARAMETER) and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Param   string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrEncodingFailed)
// holds for every ENCODING_FAILED error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidAddress   = &Error{Kind: InvalidAddress}
	ErrFunctionNotFound = &Error{Kind: FunctionNotFound}
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrEncodingFailed   = &Error{Kind: EncodingFailed}
	ErrDecodingFailed   = &Error{Kind: DecodingFailed}
	ErrNetwork          = &Error{Kind: NetworkError}
	ErrInvalidAPIKey    = &Error{Kind: InvalidAPIKey}
	ErrContractNotFound = &Error{Kind: ContractNotFound}
	ErrABIFetchFailed   = &Error{Kind: ABIFetchFailed}
	ErrRPC              = &Error{Kind: RPCError}
)

// NewError builds an Error of kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an Error of kind around cause.
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// ParamError builds an INVALID_PARAMETER error for param.
func ParamError(param string, format string, args ...any) *Error {
	return &Error{Kind: InvalidParameter, Param: param, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
