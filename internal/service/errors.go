package service

import "errors"

var (
	ErrEmptyScan = errors.New("scan input is empty")
)
