package domain

import "errors"

var (
	ErrSeatUnavailable  = errors.New("seat is already held or does not exist")
	ErrSeatNotHeld      = errors.New("seat must be held before a ticket can be issued")
	ErrShowingNotFound  = errors.New("showing not found")
	ErrDuplicateShowing = errors.New("a showing with this id already exists")
	ErrInvalidEmail     = errors.New("customer email is not a valid address")
	ErrPaymentDeclined  = errors.New("payment was declined")
	ErrOrderNotPending  = errors.New("order is no longer pending")
)
