package ingredient

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	// Search returns ingredients whose name starts with prefix, ignoring case.
	// An empty prefix returns the whole catalog.
	Search(ctx context.Context, prefix string) ([]Ingredient, error)
	GetByID(ctx context.Context, id int64) (*Ingredient, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) Search(ctx context.Context, prefix string) ([]Ingredient, error) {
	q := r.db.WithContext(ctx).Order("name ASC").Order("id ASC")
	if prefix != "" {
		q = q.Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, likeEscaper.Replace(prefix)+"%")
	}

	var items []Ingredient
	err := q.Find(&items).Error
	return items, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Ingredient, error) {
	var item Ingredient
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
