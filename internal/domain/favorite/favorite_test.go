package favorite_test

import (
	"context"
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
	"foodgram/internal/domain/favorite"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
	"foodgram/internal/middleware"
	"foodgram/internal/pkg/apperr"
	"foodgram/internal/server"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:favorite_%s?mode=memory&cache=shared", t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, server.Migrate(db))
	return db
}

func seed(t *testing.T, db *gorm.DB) (*user.User, *recipe.Recipe) {
	t.Helper()
	u := &user.User{Email: "fan@example.com", Username: "fan", FirstName: "A", LastName: "B", PasswordHash: "x"}
	require.NoError(t, db.Create(u).Error)
	rec := &recipe.Recipe{
		AuthorID:    u.ID,
		Name:        "Borscht",
		Image:       "/media/recipes/borscht.png",
		Text:        "Boil beets.",
		CookingTime: 90,
		PubDate:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(rec).Error)
	return u, rec
}

func TestService_AddRemove(t *testing.T) {
	db := newTestDB(t)
	u, rec := seed(t, db)
	svc := favorite.NewService(favorite.NewRepository(db), recipe.NewRepository(db))
	ctx := context.Background()

	summary, err := svc.Add(ctx, u.ID, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Summary{ID: rec.ID, Name: "Borscht", Image: rec.Image, CookingTime: 90}, *summary)

	_, err = svc.Add(ctx, u.ID, rec.ID)
	require.ErrorIs(t, err, favorite.ErrAlreadyFavorited)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, "recipe is already in favorites", err.Error())

	require.NoError(t, svc.Remove(ctx, u.ID, rec.ID))

	err = svc.Remove(ctx, u.ID, rec.ID)
	require.ErrorIs(t, err, favorite.ErrNotFavorited)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_UnknownRecipe(t *testing.T) {
	db := newTestDB(t)
	u, _ := seed(t, db)
	svc := favorite.NewService(favorite.NewRepository(db), recipe.NewRepository(db))

	_, err := svc.Add(context.Background(), u.ID, 4040)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)

	assert.ErrorIs(t, svc.Remove(context.Background(), u.ID, 4040), recipe.ErrRecipeNotFound)
}

func TestRepository_ForeignKeyMapsToNotFound(t *testing.T) {
	db := newTestDB(t)
	u, _ := seed(t, db)

	err := favorite.NewRepository(db).Add(context.Background(), u.ID, 777)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRepository_ContainsAndScope(t *testing.T) {
	db := newTestDB(t)
	u, rec := seed(t, db)
	other := &recipe.Recipe{AuthorID: u.ID, Name: "Kvass", Image: "/k.png", Text: "t", CookingTime: 5, PubDate: time.Now().UTC()}
	require.NoError(t, db.Create(other).Error)

	repo := favorite.NewRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, u.ID, rec.ID))

	set, err := repo.Contains(ctx, u.ID, []int64{rec.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{rec.ID: true}, set)

	var inside, outside []int64
	require.NoError(t, db.Model(&recipe.Recipe{}).Scopes(repo.Scope(u.ID, true)).Pluck("recipes.id", &inside).Error)
	require.NoError(t, db.Model(&recipe.Recipe{}).Scopes(repo.Scope(u.ID, false)).Pluck("recipes.id", &outside).Error)
	assert.Equal(t, []int64{rec.ID}, inside)
	assert.Equal(t, []int64{other.ID}, outside)
}

func TestHandler_Add(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	u, rec := seed(t, db)

	r := gin.New()
	auth := func(c *gin.Context) { c.Set(middleware.ContextUserID, u.ID); c.Next() }
	favorite.RegisterRoutes(r.Group("/api"), favorite.NewHandler(
		favorite.NewService(favorite.NewRepository(db), recipe.NewRepository(db)),
	), auth)

	path := fmt.Sprintf("/api/recipes/%d/favorite", rec.ID)
	for _, want := range []int{http.StatusCreated, http.StatusConflict} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, want, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipes/abc/favorite", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
