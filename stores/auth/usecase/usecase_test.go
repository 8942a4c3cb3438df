package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phoenix-escrow/goapi/base/ctx"
	"github.com/phoenix-escrow/goapi/domain"
	"github.com/phoenix-escrow/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	tkn, err := u.SignToken(ctx, "phoenix1seller")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "phoenix1seller", ads)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	tkn, err := u.SignToken(ctx, "phoenix1seller")
	assert.NoError(t, err)

	other := usecase.New("other-secret")
	_, err = other.ParseToken(ctx, tkn)
	assert.Error(t, err)
}

func TestSignTokenRejectsEmptyAddress(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")
	_, err := u.SignToken(ctx, domain.EmptyAddress)
	assert.Equal(t, domain.ErrInvalidInput, err)
}
