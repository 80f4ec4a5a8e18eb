package client

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventas-crm/tracker/model"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("crm-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeToken(t *testing.T) {
	t.Parallel()

	t.Run("numeric sub", func(t *testing.T) {
		t.Parallel()
		i, err := DecodeToken(sign(t, jwt.MapClaims{"sub": 7, "rol": "VENDEDOR", "nombre": "Ana"}))
		if assert.NoError(t, err) {
			assert.Equal(t, model.Identity{UserID: 7, Name: "Ana", Role: model.RoleSeller}, i)
		}
	})

	t.Run("string sub", func(t *testing.T) {
		t.Parallel()
		i, err := DecodeToken(sign(t, jwt.MapClaims{"sub": "12", "rol": "admin"}))
		if assert.NoError(t, err) {
			assert.Equal(t, 12, i.UserID)
			assert.Equal(t, model.RoleAdmin, i.Role)
			assert.Empty(t, i.Name)
		}
	})

	t.Run("seller alias", func(t *testing.T) {
		t.Parallel()
		i, err := DecodeToken(sign(t, jwt.MapClaims{"sub": 3, "rol": "SELLER"}))
		if assert.NoError(t, err) {
			assert.Equal(t, model.RoleSeller, i.Role)
		}
	})

	cases := map[string]string{
		"malformed":   "not.a.token",
		"empty":       "",
		"missing sub": sign(t, jwt.MapClaims{"rol": "ADMIN"}),
		"bad sub":     sign(t, jwt.MapClaims{"sub": "abc", "rol": "ADMIN"}),
		"zero sub":    sign(t, jwt.MapClaims{"sub": 0, "rol": "ADMIN"}),
		"unknown rol": sign(t, jwt.MapClaims{"sub": 1, "rol": "MANAGER"}),
		"missing rol": sign(t, jwt.MapClaims{"sub": 1}),
	}
	for name, token := range cases {
		token := token
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			i, err := DecodeToken(token)
			assert.ErrorIs(t, err, ErrNoIdentity)
			assert.Equal(t, model.Anonymous, i)
		})
	}
}
