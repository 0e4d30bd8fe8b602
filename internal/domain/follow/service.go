package follow

import (
	"context"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/pagination"
)

type AuthorLookup interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type RecipeStats interface {
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]recipe.Summary, error)
	CountByAuthor(ctx context.Context, authorIDs []int64) (map[int64]int64, error)
}

type Service struct {
	repo       Repository
	authors    AuthorLookup
	recipes    RecipeStats
	maxRecipes int
}

func NewService(repo Repository, authors AuthorLookup, recipes RecipeStats) *Service {
	return &Service{repo: repo, authors: authors, recipes: recipes, maxRecipes: pagination.MaxLimit}
}

// Subscribe makes userID follow authorID and returns the author with at most
// recipesLimit of their newest recipes.
func (s *Service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (*AuthorResponse, error) {
	author, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if userID == authorID {
		return nil, ErrSelfSubscription
	}
	if err := s.repo.Add(ctx, userID, authorID); err != nil {
		return nil, err
	}

	items, err := s.describe(ctx, []user.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if _, err := s.authors.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, userID, authorID)
}

// Subscriptions lists the authors userID follows.
func (s *Service) Subscriptions(ctx context.Context, userID int64, recipesLimit int, p pagination.Params) (pagination.Page[AuthorResponse], error) {
	authors, total, err := s.repo.ListAuthors(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return pagination.Page[AuthorResponse]{}, err
	}

	items, err := s.describe(ctx, authors, recipesLimit)
	if err != nil {
		return pagination.Page[AuthorResponse]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// describe builds responses for authors the caller is known to follow.
func (s *Service) describe(ctx context.Context, authors []user.User, recipesLimit int) ([]AuthorResponse, error) {
	recipesLimit = min(recipesLimit, s.maxRecipes)

	ids := make([]int64, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
	}
	counts, err := s.recipes.CountByAuthor(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]AuthorResponse, len(authors))
	for i := range authors {
		recent, err := s.recipes.RecentByAuthor(ctx, authors[i].ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		items[i] = AuthorResponse{
			Response:     user.NewResponse(&authors[i], true),
			Recipes:      recent,
			RecipesCount: counts[authors[i].ID],
		}
	}
	return items, nil
}
