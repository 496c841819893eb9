package repository

import "errors"

var (
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already exists")
	ErrTemplateNotFound    = errors.New("content template not found")
	ErrOrderNotPending     = errors.New("order is not pending")
	ErrOrderAlreadyPaid    = errors.New("order already paid")
	ErrOrderNotPayable     = errors.New("order cannot be paid in current status")
	ErrOrderHasPayments    = errors.New("order has payment records")
	ErrPaymentNotPending   = errors.New("payment is not pending")
	ErrPaymentNotCompleted = errors.New("only completed payments can be refunded")
)
