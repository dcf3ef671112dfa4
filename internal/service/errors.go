package service

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be positive")
