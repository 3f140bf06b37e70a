package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAbort(t *testing.T) {
	t.Run("Production hides the cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Abort(c, Internal(errors.New("dial tcp 10.0.0.1:27017")), false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.True(t, c.IsAborted())
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		errBody := body["error"].(map[string]any)
		assert.Equal(t, CodeInternal, errBody["code"])
		assert.Equal(t, "Something went wrong!", errBody["message"])
		assert.Contains(t, errBody, "details")
		assert.Nil(t, errBody["details"])
		assert.NotContains(t, errBody, "debug")
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
	})

	t.Run("Development exposes the cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Abort(c, Internal(errors.New("dial tcp 10.0.0.1:27017")), true)

		errBody := decode(t, w)["error"].(map[string]any)
		assert.Equal(t, "dial tcp 10.0.0.1:27017", errBody["debug"])
	})

	t.Run("Validation details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Abort(c, Validation([]FieldError{
			{Field: "name", Message: "Equipment name is required"},
			{Field: "type", Message: "Equipment type is required"},
		}), false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		details := decode(t, w)["error"].(map[string]any)["details"].([]any)
		require.Len(t, details, 2)
		assert.Equal(t, "type", details[1].(map[string]any)["field"])
	})
}

func TestSuccessEnvelopes(t *testing.T) {
	t.Run("List carries count", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		List(c, []string{}, 0)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(0), body["count"])
		assert.Equal(t, []any{}, body["data"])
	})

	t.Run("Created carries message", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Created(c, map[string]string{"id": "x"}, "Equipment created successfully")

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Equipment created successfully", body["message"])
		assert.NotContains(t, body, "error")
		assert.NotContains(t, body, "count")
	})
}
