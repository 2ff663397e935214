package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/jwalitptl/medidesk-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := ParseID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	assert.JSONEq(t, `{"id":42}`, serve(r, http.MethodGet, "/things/42", "").Body.String())

	for _, bad := range []string{"abc", "0", "-3"} {
		w := serve(r, http.MethodGet, "/things/"+bad, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.JSONEq(t, `{"status":"error","message":"Invalid id"}`, w.Body.String())
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body struct {
			Name string `json:"name"`
		}
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/", `{"name":"x"}`).Code)

	w := serve(r, http.MethodPost, "/", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestRespondErrorMapsAppErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.Validation("name: is required"), http.StatusBadRequest, "name: is required"},
		{apperrors.NotFound("patient", nil), http.StatusNotFound, ""},
		{apperrors.Forbidden("Insufficient permissions"), http.StatusForbidden, "Insufficient permissions"},
		{errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { RespondError(c, tc.err) })

		w := serve(r, http.MethodGet, "/", "")
		assert.Equal(t, tc.status, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"error"`)
		if tc.message != "" {
			assert.Contains(t, w.Body.String(), tc.message)
		}
	}
}

func TestRespondEnvelopes(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) { RespondCreated(c, 7, "Created") })
	r.PUT("/", func(c *gin.Context) { RespondMessage(c, "Updated") })

	w := serve(r, http.MethodPost, "/", "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":7,"message":"Created"}`, w.Body.String())

	w = serve(r, http.MethodPut, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Updated"}`, w.Body.String())
}
