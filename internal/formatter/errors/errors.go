package errors

import "errors"

var (
	ErrBatchTooLarge = errors.New("batch exceeds the maximum size")

	ErrUnsupportedRegion = errors.New("home region is not supported by the numbering plan")

	ErrInvalidPayload = errors.New("format request payload is not valid JSON")
)
