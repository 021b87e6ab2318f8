package models

import (
	"errors"
	"fmt"
)

// Types d'erreurs. Envelopper avec fmt.Errorf("%w: ..."), tester avec errors.Is.
var (
	ErrSchema           = errors.New("schema error")
	ErrValueCoercion    = errors.New("value coercion error")
	ErrConfiguration    = errors.New("configuration error")
	ErrConvergence      = errors.New("convergence error")
	ErrInsufficientData = errors.New("insufficient data error")
	ErrEmptyInput       = errors.New("empty input error")
	ErrParse            = errors.New("parse error")
)

// CoercionWarning signale une cellule non numérique, notée 0.
type CoercionWarning struct {
	Row       int // index 0 = première ligne de données
	ID        string
	Dimension Dimension
	Raw       string
}

func (w CoercionWarning) Error() string {
	return fmt.Sprintf("%v: row %d (id=%s) %s=%q is not a number",
		ErrValueCoercion, w.Row, w.ID, w.Dimension.Column(), w.Raw)
}

func (w CoercionWarning) Unwrap() error { return ErrValueCoercion }
