package models

import "errors"

// Custom errors
var (
	ErrMissingBaseline = errors.New("candidate baseline probability is required")
	ErrUnknownMarket   = errors.New("unknown market")
)
