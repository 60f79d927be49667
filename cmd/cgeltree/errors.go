package main

import "errors"

// Sentinel errors for command operations
var (
	ErrConversionFailed = errors.New("some trees failed to convert")
	ErrValidationFailed = errors.New("validation failed")
	ErrFileNotFormatted = errors.New("file is not formatted")
	ErrFormattingErrors = errors.New("some files had formatting errors")
	ErrConfigExists     = errors.New("configuration file already exists")
)
