package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skubridge/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping() error { return p.err }

func newSystemRouter(db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	router.NewRouter(engine).Register(NewSystemHandler("skubridge", db)).Setup()
	return engine
}

func TestSystemHandler_Health(t *testing.T) {
	r := newSystemRouter(&fakePinger{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "skubridge")
}

func TestSystemHandler_Ready(t *testing.T) {
	t.Run("ready when database reachable", func(t *testing.T) {
		r := newSystemRouter(&fakePinger{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unavailable when database down", func(t *testing.T) {
		r := newSystemRouter(&fakePinger{err: errors.New("connection refused")})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
