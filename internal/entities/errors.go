package entities

import "errors"

// ErrHighlightNotFound is returned by stores when no highlight has the
// requested id.
var ErrHighlightNotFound = errors.New("highlight not found")
