package repository

import "errors"

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrInvalidMarkTTL  = errors.New("invalid reminder mark ttl")
)
