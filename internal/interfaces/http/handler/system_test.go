package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSystemHandler().RegisterRoutes(api)

	t.Run("ping responds with pong", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool         `json:"success"`
			Data    PingResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "pong", resp.Data.Message)
		assert.NotEmpty(t, resp.Data.Timestamp)
	})

	t.Run("info reports version and uptime", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/system/info", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool               `json:"success"`
			Data    SystemInfoResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Invoicely Backend API", resp.Data.Name)
		assert.NotEmpty(t, resp.Data.GoVersion)
		assert.NotEmpty(t, resp.Data.Uptime)
	})
}
