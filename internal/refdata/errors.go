package refdata

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidTables = errors.New("invalid reference tables")
	ErrLoadTables    = errors.New("load reference tables failed")
)
