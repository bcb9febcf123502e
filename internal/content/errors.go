package content

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrIO marks a content file that could not be read.
	ErrIO = errors.New("content file unreadable")
	// ErrParse marks a content file whose front matter is malformed.
	ErrParse = errors.New("content file malformed")
)

const (
	ioFailureCode    = "CONTENT_IO_FAILURE"
	parseFailureCode = "CONTENT_PARSE_FAILURE"
)

func ioFailure(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrIO, path, err), goerrors.CategoryInternal, "read content file").
		WithTextCode(ioFailureCode)
}

func parseFailure(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrParse, path, err), goerrors.CategoryValidation, "parse content file").
		WithTextCode(parseFailureCode)
}

// IsIOFailure reports whether err was produced for an unreadable file.
func IsIOFailure(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsParseFailure reports whether err was produced for malformed front matter.
func IsParseFailure(err error) bool {
	return errors.Is(err, ErrParse)
}
