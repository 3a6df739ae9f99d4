package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongFingerprint    = errors.New("wrong fingerprint")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidationNoChunksProvided = errors.New("no cipher chunks provided")
	ErrChunkSequenceGap           = errors.New("cipher chunk sequence has gaps")
	ErrChunkCountMismatch         = errors.New("cipher chunk count does not match item descriptor")
)
