package schema

import (
	"errors"
	"fmt"
)

// ErrCredentialMissing is returned before any network activity when no
// credential is configured for the session.
var ErrCredentialMissing = errors.New("no API credential configured")

// TransportError wraps a network or HTTP-level failure. The message is
// surfaced to the user verbatim; the core performs no retries.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// InvalidModelOutputError means the model's response could not be parsed as
// the expected structure at all. It carries the raw response so the caller
// can offer the one-shot reformat resubmission.
type InvalidModelOutputError struct {
	Raw string
	Err error
}

func (e *InvalidModelOutputError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}
func (e *InvalidModelOutputError) Unwrap() error { return e.Err }

// SchemaError reports a payload that parsed as JSON but is missing required
// fields and cannot be reconciled, even via the legacy-upgrade path.
type SchemaError struct {
	Op     string // operation whose contract was violated
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s response violates contract: %s", e.Op, e.Detail)
}

func schemaErrf(op, format string, args ...interface{}) error {
	return &SchemaError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// ImportFormatError reports a bulk performance import missing its required
// column.
type ImportFormatError struct {
	Detail string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("import format error: %s", e.Detail)
}
