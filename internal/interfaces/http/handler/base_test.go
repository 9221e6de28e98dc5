package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoicelink/backend/internal/domain/shared"
	"github.com/invoicelink/backend/internal/interfaces/http/dto"
	"github.com/invoicelink/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// setAuthContext simulates an authenticated request without a real token
func setAuthContext(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.JWTUserIDKey, userID.String())
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("request_id", "ctx-request-id")

		assert.Equal(t, "ctx-request-id", getRequestID(c))
	})

	t.Run("from header when context empty", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Request-ID", "header-request-id")

		assert.Equal(t, "header-request-id", getRequestID(c))
	})

	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext(t)

		assert.Empty(t, getRequestID(c))
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("returns parsed user ID", func(t *testing.T) {
		c, _ := newTestContext(t)
		userID := uuid.New()
		setAuthContext(c, userID)

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("errors when unauthenticated", func(t *testing.T) {
		c, _ := newTestContext(t)

		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestHandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            shared.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "validation error",
			err:            shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_CLIENT_NAME",
		},
		{
			name:           "state conflict",
			err:            shared.NewDomainError("ALREADY_ACCEPTED", "Invoice already accepted"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "ALREADY_ACCEPTED",
		},
		{
			name:           "unknown error becomes internal",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	c, rec := newTestContext(t)

	h.HandleError(c, nil)

	assert.Empty(t, rec.Body.String())
}
