package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/handlers"
	"github.com/SscSPs/journal_workflow_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type swaggerDoc struct {
	Paths map[string]map[string]json.RawMessage `json:"paths"`
}

func newTestEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{}, nil)
	setupSwaggerRoutes(r, cfg)
	return r
}

func fetchSwaggerDoc(t *testing.T, r *gin.Engine) swaggerDoc {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	return doc
}

var ginParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocumentsEveryAPIRoute(t *testing.T) {
	r := newTestEngine(&config.Config{JWTSecret: "test-secret", JWTIssuer: "test"})
	doc := fetchSwaggerDoc(t, r)

	for _, route := range r.Routes() {
		if route.Path == "/health" || strings.HasPrefix(route.Path, "/swagger") {
			continue
		}
		path := ginParam.ReplaceAllString(route.Path, "{$1}")
		methods, ok := doc.Paths[path]
		if !assert.True(t, ok, "route %s %s is not documented", route.Method, path) {
			continue
		}
		_, ok = methods[strings.ToLower(route.Method)]
		assert.True(t, ok, "route %s %s is not documented", route.Method, path)
	}
}

func TestSwaggerNotServedInProduction(t *testing.T) {
	r := newTestEngine(&config.Config{JWTSecret: "test-secret", JWTIssuer: "test", IsProduction: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
