package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

func TestTokens(t *testing.T) {
	tokens := service.NewTokens("test-secret", time.Hour)
	user := &model.User{ID: uuid.New(), IsAdmin: true}

	t.Run("round trip", func(t *testing.T) {
		raw, err := tokens.Issue(user)
		require.NoError(t, err)

		claims, err := tokens.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := tokens.Verify("not-a-token")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := service.NewTokens("other-secret", time.Hour)
		raw, err := other.Issue(user)
		require.NoError(t, err)

		_, err = tokens.Verify(raw)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := service.NewTokens("test-secret", -time.Minute)
		raw, err := expired.Issue(user)
		require.NoError(t, err)

		_, err = tokens.Verify(raw)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}
