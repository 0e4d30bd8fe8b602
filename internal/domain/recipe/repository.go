package recipe

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"foodgram/internal/domain/ingredient"
	"foodgram/internal/domain/tag"
)

// Scope narrows a recipe query. Membership sets provide them for the
// is_favorited / is_in_shopping_cart filters.
type Scope = func(*gorm.DB) *gorm.DB

type Repository interface {
	// Create inserts the recipe, its tag set and its composition edges in one
	// transaction. Unknown tag or ingredient ids abort before anything is written.
	Create(ctx context.Context, rec *Recipe, tagIDs []int64) error
	// Update rewrites the scalar fields and replaces the tag set and all
	// composition edges in one transaction.
	Update(ctx context.Context, rec *Recipe, tagIDs []int64) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Recipe, error)
	List(ctx context.Context, q ListQuery, scopes []Scope, offset, limit int) ([]Recipe, int64, error)
	GetSummary(ctx context.Context, id int64) (*Summary, error)
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]Summary, error)
	CountByAuthor(ctx context.Context, authorIDs []int64) (map[int64]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Recipe, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferences(tx, tagIDs, rec.Ingredients); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		return insertComposition(tx, rec, tagIDs)
	})
}

func (r *repository) Update(ctx context.Context, rec *Recipe, tagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferences(tx, tagIDs, rec.Ingredients); err != nil {
			return err
		}

		result := tx.Model(&Recipe{}).Where("id = ?", rec.ID).Updates(map[string]any{
			"name":         rec.Name,
			"text":         rec.Text,
			"image":        rec.Image,
			"cooking_time": rec.CookingTime,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}

		if err := deleteComposition(tx, rec.ID); err != nil {
			return err
		}
		return insertComposition(tx, rec, tagIDs)
	})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteComposition(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	err := withDetails(r.db.WithContext(ctx)).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) List(ctx context.Context, q ListQuery, scopes []Scope, offset, limit int) ([]Recipe, int64, error) {
	filtered := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&Recipe{})
		if q.AuthorID > 0 {
			db = db.Where("recipes.author_id = ?", q.AuthorID)
		}
		if len(q.TagSlugs) > 0 {
			tagged := r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", q.TagSlugs)
			db = db.Where("recipes.id IN (?)", tagged)
		}
		return db.Scopes(scopes...)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []Recipe
	err := withDetails(filtered()).
		Order("recipes.pub_date DESC").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

func (r *repository) GetSummary(ctx context.Context, id int64) (*Summary, error) {
	var s Summary
	err := r.db.WithContext(ctx).
		Model(&Recipe{}).
		Select("id, name, image, cooking_time").
		Where("id = ?", id).
		Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]Summary, error) {
	summaries := []Summary{}
	if limit <= 0 {
		return summaries, nil
	}
	err := r.db.WithContext(ctx).
		Model(&Recipe{}).
		Select("id, name, image, cooking_time").
		Where("author_id = ?", authorID).
		Order("pub_date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&summaries).Error
	return summaries, err
}

func (r *repository) CountByAuthor(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID int64
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("Ingredients.Ingredient")
}

// ensureReferences fails with a NotFound naming the first unknown tag or ingredient id.
func ensureReferences(tx *gorm.DB, tagIDs []int64, edges []RecipeIngredient) error {
	if missing, err := firstMissing(tx.Model(&tag.Tag{}), tagIDs); err != nil {
		return err
	} else if missing != 0 {
		return tag.ErrTagNotFound.
			WithMessage("tag %d not found", missing).
			WithDetails(map[string]any{"tag": missing})
	}

	ingredientIDs := make([]int64, len(edges))
	for i, e := range edges {
		ingredientIDs[i] = e.IngredientID
	}
	if missing, err := firstMissing(tx.Model(&ingredient.Ingredient{}), ingredientIDs); err != nil {
		return err
	} else if missing != 0 {
		return ingredient.ErrIngredientNotFound.
			WithMessage("ingredient %d not found", missing).
			WithDetails(map[string]any{"ingredient": missing})
	}
	return nil
}

func firstMissing(model *gorm.DB, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var found []int64
	if err := model.Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return 0, err
	}
	present := make(map[int64]bool, len(found))
	for _, id := range found {
		present[id] = true
	}
	for _, id := range ids {
		if !present[id] {
			return id, nil
		}
	}
	return 0, nil
}

func insertComposition(tx *gorm.DB, rec *Recipe, tagIDs []int64) error {
	if len(tagIDs) > 0 {
		links := make([]RecipeTag, len(tagIDs))
		for i, id := range tagIDs {
			links[i] = RecipeTag{RecipeID: rec.ID, TagID: id}
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
	}

	if len(rec.Ingredients) == 0 {
		return nil
	}
	for i := range rec.Ingredients {
		rec.Ingredients[i].ID = 0
		rec.Ingredients[i].RecipeID = rec.ID
	}
	return tx.Omit(clause.Associations).Create(&rec.Ingredients).Error
}

func deleteComposition(tx *gorm.DB, recipeID int64) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&RecipeTag{}).Error; err != nil {
		return err
	}
	return tx.Where("recipe_id = ?", recipeID).Delete(&RecipeIngredient{}).Error
}
