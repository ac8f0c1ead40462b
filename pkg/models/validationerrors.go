// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found in queue")
	ErrInvalidFormat  = errors.New("format must be one of 1v1, 2v2, 3v3")
	ErrInvalidScore   = errors.New("score must be a non-negative number")
	ErrInvalidGoals   = errors.New("goal counts must be comma-separated numbers")
	ErrGroupSize      = errors.New("group size does not satisfy the format's required player count")
	ErrQueueDisabled  = errors.New("queue is disabled by admin settings")
	ErrStorage        = errors.New("storage failure")
)

var validationErrorCodeMap = map[error]int{
	ErrMatchNotFound:  520101,
	ErrPlayerNotFound: 520102,
	ErrInvalidFormat:  520103,
	ErrInvalidScore:   520104,
	ErrInvalidGoals:   520108,
	ErrGroupSize:      520105,
	ErrQueueDisabled:  520106,
	ErrStorage:        520107,
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	for registered, code := range validationErrorCodeMap {
		if errors.Is(err, registered) {
			return code
		}
	}
	return 20002
}
