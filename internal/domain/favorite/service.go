package favorite

import (
	"context"

	"foodgram/internal/domain/recipe"
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

// Add favorites recipeID for userID and returns the recipe summary.
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
