package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseEnvelope(t *testing.T) {
	t.Run("success envelope carries data only", func(t *testing.T) {
		raw, err := json.Marshal(NewSuccessResponse(map[string]string{"id": "42"}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":{"id":"42"}}`, string(raw))
	})

	t.Run("error envelope carries a plain message string", func(t *testing.T) {
		raw, err := json.Marshal(NewErrorResponse("Invoice not found"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":"Invoice not found"}`, string(raw))
	})
}
