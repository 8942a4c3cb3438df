package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested auction is not exists
	ErrNotFound = errors.New("auction not found")
	// ErrUnauthorized will throw if the caller lacks the required role for the action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput will throw if the given request-body or params is not valid
	ErrInvalidInput = errors.New("invalid input")

	// bid admission errors, both map to invalid input at the edge
	ErrBidTooLow       = errors.New("bid must be higher than the current floor")
	ErrNoValueAttached = errors.New("no value attached to bid")

	// status precondition errors
	ErrAuctionNotActive = errors.New("auction not active")
	ErrAuctionEnded     = errors.New("auction has ended")
	ErrAuctionNotEnded  = errors.New("auction not ended")

	ErrNotImplemented = errors.New("not implemented")
)
