package apperr

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid request", InvalidRequest("Credit should be positive"), KindInvalidRequest},
		{"invalid operation", InvalidOperation("insufficient balance"), KindInvalidOperation},
		{"not found wrapped", fmt.Errorf("get user: %w", NotFound("user not found")), KindNotFound},
		{"store", Store("query users", sql.ErrConnDone), KindStore},
		{"plain error", fmt.Errorf("boom"), KindStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("adjust: %w", InvalidOperation("insufficient balance"))

	assert.ErrorIs(t, err, ErrInvalidOperation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}

func TestStoreUnwrapsCause(t *testing.T) {
	err := Store("begin tx", sql.ErrConnDone)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.ErrorIs(t, err, ErrStore)
	assert.Equal(t, "begin tx: sql: connection is already closed", err.Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Debit should be negative", Message(InvalidRequest("Debit should be negative")))
	assert.Equal(t, "internal error", Message(fmt.Errorf("raw driver failure")))
}
