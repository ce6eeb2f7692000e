package table

import (
	"errors"
	"fmt"
)

var ErrAmbiguousPivotKey = errors.New("ambiguous pivot key")

// ShapeError reports that a pivot target cell would receive more than one value.
type ShapeError struct {
	Index  []any
	Column any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("index contains duplicate entries, cannot reshape: %v already has a value for column %v", e.Index, e.Column)
}

func (e *ShapeError) Is(target error) bool { return target == ErrAmbiguousPivotKey }
