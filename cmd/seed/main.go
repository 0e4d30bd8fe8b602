package main

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain/cart"
	"foodgram/internal/domain/favorite"
	"foodgram/internal/domain/follow"
	"foodgram/internal/domain/ingredient"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/tag"
	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/imagestore"
	"foodgram/internal/server"
)

type seedRecipe struct {
	author      string
	name        string
	text        string
	cookingTime int
	tags        []string
	ingredients map[string]int
	order       []string
	tint        color.RGBA
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := server.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	for _, table := range []string{"cart_items", "favorites", "follows", "recipe_ingredients", "recipe_tags", "recipes", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	// ================== CATALOG ==================
	log.Println("Upserting tags...")
	tags := []tag.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	for i := range tags {
		if err := db.Where(tag.Tag{Slug: tags[i].Slug}).FirstOrCreate(&tags[i]).Error; err != nil {
			log.Fatal("tags:", err)
		}
	}

	log.Println("Upserting ingredients...")
	ingredients := []ingredient.Ingredient{
		{Name: "eggs", MeasurementUnit: "pcs"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "butter", MeasurementUnit: "g"},
		{Name: "potatoes", MeasurementUnit: "g"},
		{Name: "beetroot", MeasurementUnit: "g"},
		{Name: "cabbage", MeasurementUnit: "g"},
		{Name: "sour cream", MeasurementUnit: "tbsp"},
	}
	for i := range ingredients {
		err := db.Where(ingredient.Ingredient{Name: ingredients[i].Name, MeasurementUnit: ingredients[i].MeasurementUnit}).
			FirstOrCreate(&ingredients[i]).Error
		if err != nil {
			log.Fatal("ingredients:", err)
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	hash, err := bcrypt.GenerateFromPassword([]byte("foodgram123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}
	users := map[string]*user.User{}
	for _, u := range []user.User{
		{Email: "anna@foodgram.local", Username: "anna", FirstName: "Anna", LastName: "Smirnova"},
		{Email: "boris@foodgram.local", Username: "boris", FirstName: "Boris", LastName: "Petrov"},
		{Email: "vera@foodgram.local", Username: "vera", FirstName: "Vera", LastName: "Ivanova"},
	} {
		u.PasswordHash = string(hash)
		if err := db.Create(&u).Error; err != nil {
			log.Fatal("users:", err)
		}
		created := u
		users[u.Username] = &created
		log.Printf("User created: %s / foodgram123", u.Email)
	}

	// ================== RECIPES ==================
	log.Println("Creating recipes...")
	images := imagestore.New(cfg.MediaDir, cfg.MediaURL, cfg.ImageMaxWidth, cfg.ImageMaxBytes).WithMaxPixels(cfg.ImageMaxPixels)
	tagBySlug := map[string]int64{}
	for _, t := range tags {
		tagBySlug[t.Slug] = t.ID
	}
	ingredientByName := map[string]int64{}
	for _, in := range ingredients {
		ingredientByName[in.Name] = in.ID
	}

	recipes := []seedRecipe{
		{
			author: "anna", name: "Pancakes", cookingTime: 30,
			text:        "Whisk eggs with milk and sugar, fold in flour, fry thin pancakes in butter.",
			tags:        []string{"breakfast"},
			ingredients: map[string]int{"eggs": 2, "milk": 500, "flour": 200, "sugar": 30, "salt": 2, "butter": 20},
			order:       []string{"eggs", "milk", "flour", "sugar", "salt", "butter"},
			tint:        color.RGBA{R: 230, G: 180, B: 90, A: 255},
		},
		{
			author: "anna", name: "Borscht", cookingTime: 120,
			text:        "Simmer beetroot, cabbage and potatoes; serve hot with sour cream.",
			tags:        []string{"lunch", "dinner"},
			ingredients: map[string]int{"beetroot": 300, "cabbage": 250, "potatoes": 300, "salt": 10, "sour cream": 4},
			order:       []string{"beetroot", "cabbage", "potatoes", "salt", "sour cream"},
			tint:        color.RGBA{R: 160, G: 20, B: 50, A: 255},
		},
		{
			author: "boris", name: "Mashed potatoes", cookingTime: 40,
			text:        "Boil potatoes in salted water, mash with warm milk and butter.",
			tags:        []string{"dinner"},
			ingredients: map[string]int{"potatoes": 800, "milk": 150, "butter": 50, "salt": 5},
			order:       []string{"potatoes", "milk", "butter", "salt"},
			tint:        color.RGBA{R: 240, G: 225, B: 170, A: 255},
		},
	}

	created := map[string]*recipe.Recipe{}
	pubDate := time.Now().UTC().Add(-time.Duration(len(recipes)) * time.Hour)
	for _, sr := range recipes {
		pubDate = pubDate.Add(time.Hour)
		rec, err := createRecipe(db, images, users[sr.author].ID, sr, pubDate, tagBySlug, ingredientByName)
		if err != nil {
			log.Fatalf("recipe %s: %v", sr.name, err)
		}
		created[sr.name] = rec
		log.Printf("Recipe created: %s (%s)", rec.Name, rec.Image)
	}

	// ================== MEMBERSHIPS ==================
	log.Println("Creating follows, favorites and cart items...")
	rows := []any{
		&follow.Follow{UserID: users["vera"].ID, AuthorID: users["anna"].ID},
		&follow.Follow{UserID: users["boris"].ID, AuthorID: users["anna"].ID},
		&favorite.Favorite{UserID: users["vera"].ID, RecipeID: created["Borscht"].ID},
		&cart.CartItem{UserID: users["vera"].ID, RecipeID: created["Pancakes"].ID},
		&cart.CartItem{UserID: users["vera"].ID, RecipeID: created["Mashed potatoes"].ID},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			log.Fatal("memberships:", err)
		}
	}

	log.Println("Seed completed")
}

func createRecipe(db *gorm.DB, images *imagestore.Store, authorID int64, sr seedRecipe, pubDate time.Time, tagBySlug, ingredientByName map[string]int64) (*recipe.Recipe, error) {
	url, err := images.SaveBase64(placeholderImage(sr.tint))
	if err != nil {
		return nil, err
	}

	rec := &recipe.Recipe{
		AuthorID:    authorID,
		Name:        sr.name,
		Text:        sr.text,
		Image:       url,
		CookingTime: sr.cookingTime,
		PubDate:     pubDate,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		for _, slug := range sr.tags {
			if err := tx.Create(&recipe.RecipeTag{RecipeID: rec.ID, TagID: tagBySlug[slug]}).Error; err != nil {
				return err
			}
		}
		for _, name := range sr.order {
			edge := recipe.RecipeIngredient{RecipeID: rec.ID, IngredientID: ingredientByName[name], Amount: sr.ingredients[name]}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = images.Delete(url)
		return nil, err
	}
	return rec, nil
}

// placeholderImage renders a flat-colored PNG as a data URI.
func placeholderImage(tint color.RGBA) string {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, tint)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
