package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSagaCompensatesInReverseOrder(t *testing.T) {
	var order []string

	sg := newSaga(zerolog.Nop())
	sg.onFailure("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	sg.onFailure("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	sg.compensate(context.Background())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestSagaKeepsGoingWhenCompensationFails(t *testing.T) {
	ran := false

	sg := newSaga(zerolog.Nop())
	sg.onFailure("survives", func(context.Context) error {
		ran = true
		return nil
	})
	sg.onFailure("fails", func(context.Context) error {
		return errors.New("boom")
	})

	sg.compensate(context.Background())
	assert.True(t, ran, "a failed compensation must not stop the rest")
}

func TestSagaEmptyIsNoop(t *testing.T) {
	sg := newSaga(zerolog.Nop())
	sg.compensate(context.Background())
}
