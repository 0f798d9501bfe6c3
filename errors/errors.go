package errors

import "fmt"

var (
	ErrNotConnected   = fmt.Errorf("transport is not connected")
	ErrClosed         = fmt.Errorf("transport is closed")
	ErrUnknownEvent   = fmt.Errorf("unknown protocol event")
	ErrMalformedEvent = fmt.Errorf("malformed protocol event payload")
)
