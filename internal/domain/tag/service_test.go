package tag

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:tag_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Tag{}))
	require.NoError(t, db.Create(&[]Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	}).Error)
	return db
}

// memoryCache is a map-backed cache.Cache that counts hits.
type memoryCache struct {
	data map[string][]byte
	hits int
}

func (m *memoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(raw, dst)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestService_ListUsesCache(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mc := &memoryCache{data: map[string][]byte{}}
	svc := NewService(NewRepository(db), mc, time.Minute, nil)

	tags, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Slug)

	// served from cache even after the table changes
	require.NoError(t, db.Create(&Tag{Name: "Lunch", Color: "#8775D2", Slug: "lunch"}).Error)
	tags, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, 1, mc.hits)
}

func TestService_GetNotFound(t *testing.T) {
	svc := NewService(NewRepository(newTestDB(t)), nil, time.Minute, nil)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestHandler_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(NewService(NewRepository(newTestDB(t)), nil, time.Minute, nil)))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"slug":"dinner"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tags/1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Breakfast"`)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tags/99", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TAG_NOT_FOUND")
}
