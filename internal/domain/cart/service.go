package cart

import (
	"context"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/pkg/metrics"
)

type RecipeLookup interface {
	GetSummary(ctx context.Context, id int64) (*recipe.Summary, error)
}

type Service struct {
	repo    Repository
	recipes RecipeLookup
}

func NewService(repo Repository, recipes RecipeLookup) *Service {
	return &Service{repo: repo, recipes: recipes}
}

func (s *Service) Add(ctx context.Context, userID, recipeID int64) (*recipe.Summary, error) {
	summary, err := s.recipes.GetSummary(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) Remove(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.recipes.GetSummary(ctx, recipeID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, recipeID)
}

// ShoppingList consolidates the ingredients of every recipe in the user's
// cart. It only reads, so repeated calls over an unchanged cart agree.
func (s *Service) ShoppingList(ctx context.Context, userID int64) ([]Item, error) {
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := Aggregate(lines)
	metrics.ShoppingListLines.Observe(float64(len(items)))
	return items, nil
}
