package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, NewAmountExceedsPendingError(700, 600).Code)
	assert.Equal(t, http.StatusNotFound, NewPaymentNotFoundError("p1").Code)
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("Client").Code)
	assert.Equal(t, http.StatusInternalServerError, NewPersistenceError(assert.AnError).Code)
	assert.ErrorIs(t, NewPersistenceError(assert.AnError), assert.AnError)
	assert.ErrorIs(t, NewPaymentNotFoundError("p1"), &AppError{Kind: KindPaymentNotFound})
}

func TestHandleError_HidesPersistenceDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	appErr := NewPersistenceError(assert.AnError)
	appErr.Details = "disk full"
	HandleError(c, appErr)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(KindPersistenceFailure), body["kind"])
	assert.NotContains(t, body, "details")
}

func TestHandleError_ReportsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, NewFieldValidationError(map[string]string{"nationalId": "national ID is invalid"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"nationalId":"national ID is invalid"`)
}
