package cart_test

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
	"foodgram/internal/domain/cart"
	"foodgram/internal/domain/ingredient"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
	"foodgram/internal/middleware"
	"foodgram/internal/server"
)

type kitchen struct {
	db     *gorm.DB
	cook   user.User
	soup   recipe.Recipe
	salad  recipe.Recipe
	shared recipe.Recipe
}

// newKitchen seeds three recipes:
// soup = Salt 10 g, Water 1 l; salad = Sugar 5 g, Salt 20 g; shared = Pepper 1 g.
func newKitchen(t *testing.T) *kitchen {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:cart_%s?mode=memory&cache=shared", t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, server.Migrate(db))

	k := &kitchen{db: db, cook: user.User{Email: "cook@example.com", Username: "cook", FirstName: "C", LastName: "K", PasswordHash: "x"}}
	require.NoError(t, db.Create(&k.cook).Error)

	catalog := map[string]*ingredient.Ingredient{
		"Salt":   {Name: "Salt", MeasurementUnit: "g"},
		"Water":  {Name: "Water", MeasurementUnit: "l"},
		"Sugar":  {Name: "Sugar", MeasurementUnit: "g"},
		"Pepper": {Name: "Pepper", MeasurementUnit: "g"},
	}
	for _, name := range []string{"Salt", "Water", "Sugar", "Pepper"} {
		require.NoError(t, db.Create(catalog[name]).Error)
	}

	mk := func(rec *recipe.Recipe, name string, parts ...any) {
		*rec = recipe.Recipe{AuthorID: k.cook.ID, Name: name, Image: "/" + name + ".png", Text: "t", CookingTime: 5, PubDate: time.Now().UTC()}
		require.NoError(t, db.Create(rec).Error)
		for i := 0; i < len(parts); i += 2 {
			edge := recipe.RecipeIngredient{RecipeID: rec.ID, IngredientID: catalog[parts[i].(string)].ID, Amount: parts[i+1].(int)}
			require.NoError(t, db.Create(&edge).Error)
		}
	}
	mk(&k.soup, "Soup", "Salt", 10, "Water", 1)
	mk(&k.salad, "Salad", "Sugar", 5, "Salt", 20)
	mk(&k.shared, "Shared", "Pepper", 1)
	return k
}

func TestService_ShoppingList(t *testing.T) {
	k := newKitchen(t)
	svc := cart.NewService(cart.NewRepository(k.db), recipe.NewRepository(k.db))
	ctx := context.Background()

	items, err := svc.ShoppingList(ctx, k.cook.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.Add(ctx, k.cook.ID, k.soup.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, k.cook.ID, k.salad.ID)
	require.NoError(t, err)

	items, err = svc.ShoppingList(ctx, k.cook.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salt - 30, g\nWater - 1, l\nSugar - 5, g", cart.Format(items))

	again, err := svc.ShoppingList(ctx, k.cook.ID)
	require.NoError(t, err)
	assert.Equal(t, items, again)
}

func TestService_AddRemove(t *testing.T) {
	k := newKitchen(t)
	svc := cart.NewService(cart.NewRepository(k.db), recipe.NewRepository(k.db))
	ctx := context.Background()

	summary, err := svc.Add(ctx, k.cook.ID, k.shared.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shared", summary.Name)

	_, err = svc.Add(ctx, k.cook.ID, k.shared.ID)
	require.ErrorIs(t, err, cart.ErrAlreadyInCart)
	assert.Equal(t, "recipe is already in the shopping cart", err.Error())

	require.NoError(t, svc.Remove(ctx, k.cook.ID, k.shared.ID))
	assert.ErrorIs(t, svc.Remove(ctx, k.cook.ID, k.shared.ID), cart.ErrNotInCart)

	_, err = svc.Add(ctx, k.cook.ID, 9999)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRepository_LinesFollowCartOrder(t *testing.T) {
	k := newKitchen(t)
	repo := cart.NewRepository(k.db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, k.cook.ID, k.salad.ID))
	require.NoError(t, repo.Add(ctx, k.cook.ID, k.soup.ID))

	lines, err := repo.Lines(ctx, k.cook.ID)
	require.NoError(t, err)
	assert.Equal(t, []cart.Line{
		{Name: "Sugar", MeasurementUnit: "g", Amount: 5},
		{Name: "Salt", MeasurementUnit: "g", Amount: 20},
		{Name: "Salt", MeasurementUnit: "g", Amount: 10},
		{Name: "Water", MeasurementUnit: "l", Amount: 1},
	}, lines)
}

func TestHandler_Download(t *testing.T) {
	gin.SetMode(gin.TestMode)
	k := newKitchen(t)
	repo := cart.NewRepository(k.db)
	require.NoError(t, repo.Add(context.Background(), k.cook.ID, k.soup.ID))
	require.NoError(t, repo.Add(context.Background(), k.cook.ID, k.salad.ID))

	r := gin.New()
	auth := func(c *gin.Context) { c.Set(middleware.ContextUserID, k.cook.ID); c.Next() }
	cart.RegisterRoutes(r.Group("/api"), cart.NewHandler(cart.NewService(repo, recipe.NewRepository(k.db))), auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping_list.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Salt - 30, g\nWater - 1, l\nSugar - 5, g", w.Body.String())
}
