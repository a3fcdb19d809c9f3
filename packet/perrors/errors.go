// Package perrors defines the error taxonomy of the packet decoder.
//
// Errors that make the rest of a decode meaningless (unidentifiable logcode,
// version, or layout) are returned from the whole decode call. Errors local
// to a single field's bytes are recovered by the caller so that one bad
// field never loses the rest of a packet.
package perrors

import (
	"fmt"
)

type (
	MalformedInputError struct {
		Reason string
	}
	LengthMismatchError struct {
		Declared int
		Actual   int
	}
	LogcodeNotFoundError struct {
		LogcodeID string
	}
	VersionNotFoundError struct {
		LogcodeID string
		Version   uint64
	}
	PayloadTooShortError struct {
		RequiredBytes int
		ActualBytes   int
		FieldName     string
	}
	FieldDecodingError struct {
		FieldName string
		Reason    string
	}
)

func (r MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", r.Reason)
}

func (r LengthMismatchError) Error() string {
	return fmt.Sprintf(
		"length mismatch: declared %d bytes, got %d bytes",
		r.Declared, r.Actual,
	)
}

func (r LogcodeNotFoundError) Error() string {
	return fmt.Sprintf("logcode %s not found in metadata", r.LogcodeID)
}

func (r VersionNotFoundError) Error() string {
	return fmt.Sprintf(
		"version %d not found for logcode %s",
		r.Version, r.LogcodeID,
	)
}

func (r PayloadTooShortError) Error() string {
	msg := fmt.Sprintf(
		"payload too short: need %d bytes, got %d",
		r.RequiredBytes, r.ActualBytes,
	)
	if r.FieldName != "" {
		msg += fmt.Sprintf(" (field: %s)", r.FieldName)
	}
	return msg
}

func (r FieldDecodingError) Error() string {
	return fmt.Sprintf(`failed to decode field "%s": %s`, r.FieldName, r.Reason)
}
