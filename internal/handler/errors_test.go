package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpad-app/classpad-backend/internal/repository"
	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
)

func runFailFromError(t *testing.T, err error) (int, response.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	failFromError(c, err)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestFailFromError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   response.ErrCode
	}{
		{repository.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
		{repository.ErrAlreadyExists, http.StatusConflict, response.ErrAlreadyExists},
		{repository.ErrConflict, http.StatusConflict, response.ErrConflict},
		{repository.ErrTransient, http.StatusServiceUnavailable, response.ErrTransient},
		{service.ErrBadGroupName, http.StatusBadRequest, response.ErrInvalidGroupName},
		{errors.New("boom"), http.StatusInternalServerError, response.ErrInternal},
	}

	for _, tc := range cases {
		t.Run(string(tc.wantCode), func(t *testing.T) {
			status, body := runFailFromError(t, tc.err)
			assert.Equal(t, tc.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestFailFromError_WrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("load class c1: %w", repository.ErrNotFound)
	status, body := runFailFromError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, response.ErrNotFound, body.Error.Code)
}
