package generator

import "errors"

// Every error returned by Driver.Execute wraps exactly one of these.
var (
	ErrDirectoryCreation = errors.New("directory creation failed")
	ErrScan              = errors.New("scan failed")
	ErrGeneration        = errors.New("JavaCC execution failed")
	ErrMarkerWrite       = errors.New("marker write failed")
	ErrSourceRoot        = errors.New("source root registration failed")
)
