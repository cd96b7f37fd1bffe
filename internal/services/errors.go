package services

import "errors"

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrGroupNotFound        = errors.New("group not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrNotOwner             = errors.New("only the owner can do that")
	ErrOwnerCannotLeave     = errors.New("owner cannot leave own group")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrInvalidRSVPStatus    = errors.New("invalid rsvp status")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
	ErrNotificationNotFound = errors.New("notification not found")
)
