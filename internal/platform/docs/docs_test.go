package docs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad validates the embedded document and sets the server URL.
func TestLoad(t *testing.T) {
	doc, err := Load(context.Background(), "https://api.example.com:443/api/v1")

	require.NoError(t, err)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com:443/api/v1", doc.Servers[0].URL)

	for _, path := range []string{"/users", "/users/email/{email}", "/users/{id}"} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
	assert.NotNil(t, doc.Paths.Find("/users/{id}").Delete)
	assert.Contains(t, doc.Components.Schemas, "Error")
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	doc, err := Load(context.Background(), "")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/docs/openapi.json", Handler(doc))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/users/{id}")
}
