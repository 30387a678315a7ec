package saldo

import "errors"

var ErrNoBalance = errors.New("no balance recorded yet")
