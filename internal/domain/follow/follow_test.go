package follow_test

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
	"foodgram/internal/domain/follow"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
	"foodgram/internal/middleware"
	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/server"
)

type community struct {
	db                  *gorm.DB
	svc                 *follow.Service
	reader, chef, baker user.User
}

func newCommunity(t *testing.T) *community {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:follow_%s?mode=memory&cache=shared", t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, server.Migrate(db))

	c := &community{db: db}
	for i, u := range []*user.User{&c.reader, &c.chef, &c.baker} {
		name := []string{"reader", "chef", "baker"}[i]
		*u = user.User{Email: name + "@example.com", Username: name, FirstName: name, LastName: "X", PasswordHash: "x"}
		require.NoError(t, db.Create(u).Error)
	}

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := recipe.Recipe{
			AuthorID:    c.chef.ID,
			Name:        fmt.Sprintf("Dish %d", i+1),
			Image:       "/img.png",
			Text:        "t",
			CookingTime: 10,
			PubDate:     base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&rec).Error)
	}

	c.svc = follow.NewService(follow.NewRepository(db), user.NewRepository(db), recipe.NewRepository(db))
	return c
}

func TestSubscribe(t *testing.T) {
	c := newCommunity(t)
	ctx := context.Background()

	author, err := c.svc.Subscribe(ctx, c.reader.ID, c.chef.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "chef", author.Username)
	assert.True(t, author.IsSubscribed)
	assert.Equal(t, int64(5), author.RecipesCount)
	require.Len(t, author.Recipes, 2)
	assert.Equal(t, "Dish 5", author.Recipes[0].Name)
	assert.Equal(t, "Dish 4", author.Recipes[1].Name)

	_, err = c.svc.Subscribe(ctx, c.reader.ID, c.chef.ID, 2)
	require.ErrorIs(t, err, follow.ErrAlreadySubscribed)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSubscribe_Rejections(t *testing.T) {
	c := newCommunity(t)
	ctx := context.Background()

	_, err := c.svc.Subscribe(ctx, c.reader.ID, c.reader.ID, 3)
	require.ErrorIs(t, err, follow.ErrSelfSubscription)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = c.svc.Subscribe(ctx, c.reader.ID, 12345, 3)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	var n int64
	require.NoError(t, c.db.Model(&follow.Follow{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUnsubscribe(t *testing.T) {
	c := newCommunity(t)
	ctx := context.Background()

	_, err := c.svc.Subscribe(ctx, c.reader.ID, c.baker.ID, 3)
	require.NoError(t, err)

	require.NoError(t, c.svc.Unsubscribe(ctx, c.reader.ID, c.baker.ID))
	assert.ErrorIs(t, c.svc.Unsubscribe(ctx, c.reader.ID, c.baker.ID), follow.ErrNotSubscribed)
	assert.ErrorIs(t, c.svc.Unsubscribe(ctx, c.reader.ID, 999), user.ErrUserNotFound)
}

func TestSubscriptions(t *testing.T) {
	c := newCommunity(t)
	ctx := context.Background()

	_, err := c.svc.Subscribe(ctx, c.reader.ID, c.baker.ID, 3)
	require.NoError(t, err)
	_, err = c.svc.Subscribe(ctx, c.reader.ID, c.chef.ID, 3)
	require.NoError(t, err)

	page, err := c.svc.Subscriptions(ctx, c.reader.ID, 3, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Results, 2)

	baker, chef := page.Results[0], page.Results[1]
	assert.Equal(t, "baker", baker.Username)
	assert.Empty(t, baker.Recipes)
	assert.NotNil(t, baker.Recipes)
	assert.Zero(t, baker.RecipesCount)

	assert.Equal(t, "chef", chef.Username)
	assert.Len(t, chef.Recipes, 3)
	assert.Equal(t, int64(5), chef.RecipesCount)
	assert.True(t, chef.IsSubscribed)

	empty, err := c.svc.Subscriptions(ctx, c.chef.ID, 3, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Empty(t, empty.Results)
}

func TestRecipesLimitIsCapped(t *testing.T) {
	c := newCommunity(t)
	ctx := context.Background()
	c.svc.SetMaxRecipes(2)

	author, err := c.svc.Subscribe(ctx, c.reader.ID, c.chef.ID, 1_000_000)
	require.NoError(t, err)
	assert.Len(t, author.Recipes, 2)
	assert.Equal(t, int64(5), author.RecipesCount)

	page, err := c.svc.Subscriptions(ctx, c.reader.ID, 1_000_000, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Len(t, page.Results[0].Recipes, 2)
}

func TestHandler_RecipesLimitDefaultCap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newCommunity(t)

	r := gin.New()
	auth := func(ctx *gin.Context) { ctx.Set(middleware.ContextUserID, c.reader.ID); ctx.Next() }
	follow.RegisterRoutes(r.Group("/api"), follow.NewHandler(c.svc, 6, 3), auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe?recipes_limit=9223372036854775807", c.chef.ID), nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data follow.AuthorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Recipes, 5)
	assert.LessOrEqual(t, len(body.Data.Recipes), pagination.MaxLimit)
}

func TestUserIsSubscribedFlag(t *testing.T) {
	c := newCommunity(t)
	ctx := context.Background()
	repo := follow.NewRepository(c.db)
	require.NoError(t, repo.Add(ctx, c.reader.ID, c.chef.ID))

	users := user.NewService(user.NewRepository(c.db), repo, nil)

	seen, err := users.Get(ctx, c.reader.ID, c.chef.ID)
	require.NoError(t, err)
	assert.True(t, seen.IsSubscribed)

	anonymous, err := users.Get(ctx, 0, c.chef.ID)
	require.NoError(t, err)
	assert.False(t, anonymous.IsSubscribed)
}

func TestHandler_SubscribeRecipesLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newCommunity(t)

	r := gin.New()
	auth := func(ctx *gin.Context) { ctx.Set(middleware.ContextUserID, c.reader.ID); ctx.Next() }
	follow.RegisterRoutes(r.Group("/api"), follow.NewHandler(c.svc, 6, 3), auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe?recipes_limit=1", c.chef.ID), nil))
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success bool                  `json:"success"`
		Data    follow.AuthorResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Recipes, 1)
	assert.Equal(t, int64(5), body.Data.RecipesCount)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", c.reader.ID), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/subscriptions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recipes_count":5`)
}
