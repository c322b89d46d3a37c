package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(origins []string, origin string) *httptest.ResponseRecorder {
	app := gin.New()
	app.Use(cors.New(corsConfig(origins)))
	app.GET("/recipes", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestCORS_WildcardWithoutCredentials(t *testing.T) {
	w := corsRequest([]string{"*"}, "http://evil.test")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ListedOriginsGetCredentials(t *testing.T) {
	origins := []string{"http://app.test"}

	w := corsRequest(origins, "http://app.test")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = corsRequest(origins, "http://evil.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
