package dinner

import "errors"

// ErrInvertedRange is returned for queries whose To lies before From.
var ErrInvertedRange = errors.New("query range end lies before its start")
