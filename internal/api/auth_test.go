package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints(t *testing.T) {
	engine, _, _ := setupTestRouter(t)

	t.Run("register validates body", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"name":  "No Email",
			"email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("register then login", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"name":     "Marta",
			"email":    "marta@example.com",
			"password": "password123",
			"username": "marta",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = doJSON(engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "marta@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"name":     "Marta Again",
			"email":    "marta@example.com",
			"password": "password123",
			"username": "marta2",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		w := doJSON(engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email":    "marta@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
