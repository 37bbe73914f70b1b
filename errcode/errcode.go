package errcode

// Code is a stable error identifier for digital line operations.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Capability / argument errors.
	Unsupported    Code = "unsupported"
	InvalidTrigger Code = "invalid_trigger"
	InvalidHandler Code = "invalid_handler"
	NoHandler      Code = "no_handler"

	// Resource errors.
	Unavailable Code = "unavailable"
	LineBusy    Code = "line_busy"

	// Lookup errors (config / registry).
	UnknownLine   Code = "unknown_line"
	UnknownDriver Code = "unknown_driver"
	UnknownChip   Code = "unknown_chip"
	InvalidConfig Code = "invalid_config"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// MapDriverErr maps low-level driver errors to a Code.
// Extend the heuristics per platform/driver.
func MapDriverErr(err error) Code {
	if err == nil {
		return OK
	}
	return Error
}
