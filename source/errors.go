package source

import "errors"

var (
	// ErrInvalidFrontMatter is returned when a Markdown front matter block cannot be parsed
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	// ErrNoSources is returned when the inputs name no readable source file
	ErrNoSources = errors.New("no source files found")
)
