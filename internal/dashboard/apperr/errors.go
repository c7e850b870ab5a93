// Package apperr classifica os erros do dashboard para o mapeamento em status HTTP.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifica a classe do erro.
type Kind int

const (
	KindStore Kind = iota
	KindInvalidRequest
	KindInvalidOperation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindNotFound:
		return "not_found"
	default:
		return "store_error"
	}
}

// Error carrega a classe, uma mensagem segura para o cliente e a causa opcional.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara pela classe, o que permite errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinelas por classe (comparadas apenas pelo Kind).
var (
	ErrInvalidRequest   = &Error{Kind: KindInvalidRequest}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrStore            = &Error{Kind: KindStore}
)

func InvalidRequest(msg string) error {
	return &Error{Kind: KindInvalidRequest, Msg: msg}
}

func InvalidOperation(msg string) error {
	return &Error{Kind: KindInvalidOperation, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Store embrulha uma falha de banco/infra.
func Store(msg string, err error) error {
	return &Error{Kind: KindStore, Msg: msg, Err: err}
}

// KindOf devolve a classe do primeiro *Error na cadeia; erros desconhecidos são KindStore.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// Message devolve a mensagem pública do erro classificado.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}
