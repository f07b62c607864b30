package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leavehub/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success - first request executes and response is cached", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		calls := 0
		router := gin.New()
		router.Use(middleware.Idempotency(rdb))
		router.POST("/leave-requests", func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true, "data": gin.H{"id": "abc"}})
		})

		cacheKey := "idemp:/leave-requests::key-1"
		lockKey := cacheKey + ":lock"
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.Regexp().ExpectSet(cacheKey, `.*`, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success - retry replays the cached response without re-executing", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		calls := 0
		router := gin.New()
		router.Use(middleware.Idempotency(rdb))
		router.POST("/leave-requests", func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		cached := `{"ok":true,"data":{"id":"abc"}}`
		redisMock.ExpectGet("idemp:/leave-requests::key-1").SetVal(cached)

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, cached, w.Body.String())
		assert.Equal(t, 0, calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative - concurrent duplicate is rejected while the lock holds", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		router := gin.New()
		router.Use(middleware.Idempotency(rdb))
		router.POST("/leave-requests", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		cacheKey := "idemp:/leave-requests::key-1"
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("negative - failed response releases the lock without caching", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		router := gin.New()
		router.Use(middleware.Idempotency(rdb))
		router.POST("/leave-requests", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"ok": false})
		})

		cacheKey := "idemp:/leave-requests::key-1"
		lockKey := cacheKey + ":lock"
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("success - requests without a key pass through untouched", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		calls := 0
		router := gin.New()
		router.Use(middleware.Idempotency(rdb))
		router.POST("/leave-requests", func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
