package logging

import "errors"

var (
	ErrOpenLogFile = errors.New("logging: open log file")
	ErrWriteEvent  = errors.New("logging: write event")
	ErrMarshalData = errors.New("logging: marshal event data")
	ErrCloseWriter = errors.New("logging: close writer")
)
