package service

import "errors"

// ErrInvalidRange reports a query whose start is not before its end.
var ErrInvalidRange = errors.New("invalid date range")
