package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("refresh token invalid or expired")
	ErrJourneyNotFound     = errors.New("journey not found")
	ErrTutorialNotFound    = errors.New("tutorial not found")
	ErrNothingRecorded     = errors.New("activity write affected no rows")
	ErrPermissionDenied    = errors.New("permission denied")
)
