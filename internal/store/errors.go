package store

import (
	"errors"
	"fmt"
)

// StorageReadError means the backing file exists but could not be read or
// parsed as a table. Callers should fall back to an empty table and log;
// a corrupt file must never crash the process.
type StorageReadError struct {
	Path string
	Err  error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read table %s: %v", e.Path, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError means a persist attempt failed. The previous on-disk
// state is still intact; the write is all-or-nothing.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write table %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// DateFormatError reports a date that could not be canonicalized to
// YYYY-MM-DD. During load it fails only the offending row; on submit it
// fails the submission.
type DateFormatError struct {
	Input string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("cannot parse %q as a date (want YYYY-MM-DD)", e.Input)
}

// IsReadError reports whether err is (or wraps) a StorageReadError.
func IsReadError(err error) bool {
	var re *StorageReadError
	return errors.As(err, &re)
}

// IsDateFormatError reports whether err is (or wraps) a DateFormatError.
func IsDateFormatError(err error) bool {
	var de *DateFormatError
	return errors.As(err, &de)
}
