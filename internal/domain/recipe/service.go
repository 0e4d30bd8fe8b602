package recipe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"foodgram/internal/domain/tag"
	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/pagination"
)

// ImageStore persists base64 recipe images and serves them by URL.
type ImageStore interface {
	SaveBase64(payload string) (string, error)
	Delete(url string) error
}

// MembershipSet is a per-user set of recipes such as favorites or the cart.
type MembershipSet interface {
	// Contains reports which of recipeIDs belong to userID's set.
	Contains(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error)
	// Scope keeps recipes inside (include) or outside the user's set.
	Scope(userID int64, include bool) Scope
}

type Service struct {
	repo      Repository
	images    ImageStore
	favorites MembershipSet
	cart      MembershipSet
	subs      user.SubscriptionLookup
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	repo Repository,
	images ImageStore,
	favorites MembershipSet,
	cart MembershipSet,
	subs user.SubscriptionLookup,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		images:    images,
		favorites: favorites,
		cart:      cart,
		subs:      subs,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, authorID int64, req CreateRequest) (*Response, error) {
	edges, err := buildComposition(req.Ingredients)
	if err != nil {
		return nil, err
	}
	if req.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}
	tagIDs := uniqueIDs(req.Tags)
	if len(tagIDs) == 0 {
		return nil, ErrTagsRequired
	}
	if req.Image == "" {
		return nil, ErrImageRequired
	}

	imageURL, err := s.images.SaveBase64(req.Image)
	if err != nil {
		return nil, err
	}

	rec := &Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imageURL,
		CookingTime: req.CookingTime,
		PubDate:     s.now(),
		Ingredients: edges,
	}
	if err := s.repo.Create(ctx, rec, tagIDs); err != nil {
		s.discardImage(imageURL)
		return nil, err
	}

	return s.Get(ctx, authorID, rec.ID)
}

// Update applies req to recipe id on behalf of userID, who must be its author.
func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateRequest) (*Response, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	edges, err := buildComposition(req.Ingredients)
	if err != nil {
		return nil, err
	}
	if req.CookingTime != nil && *req.CookingTime < 1 {
		return nil, ErrInvalidCookingTime
	}
	tagIDs := uniqueIDs(req.Tags)
	if len(tagIDs) == 0 {
		return nil, ErrTagsRequired
	}

	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Text != nil {
		rec.Text = *req.Text
	}
	if req.CookingTime != nil {
		rec.CookingTime = *req.CookingTime
	}

	oldImage := rec.Image
	newImage := ""
	if req.Image != nil {
		if newImage, err = s.images.SaveBase64(*req.Image); err != nil {
			return nil, err
		}
		rec.Image = newImage
	}

	rec.Ingredients = edges
	if err := s.repo.Update(ctx, rec, tagIDs); err != nil {
		if newImage != "" {
			s.discardImage(newImage)
		}
		return nil, err
	}
	if newImage != "" {
		s.discardImage(oldImage)
	}

	return s.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.AuthorID != userID {
		return ErrNotAuthor
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.discardImage(rec.Image)
	return nil
}

// Get returns recipe id as seen by viewerID (0 for anonymous).
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*Response, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.represent(ctx, viewerID, []Recipe{*rec})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// List applies q and paginates. Membership filters need an identified viewer
// and are ignored for anonymous callers.
func (s *Service) List(ctx context.Context, viewerID int64, q ListQuery, p pagination.Params) (pagination.Page[Response], error) {
	var scopes []Scope
	if viewerID > 0 {
		if q.Favorited != nil {
			scopes = append(scopes, s.favorites.Scope(viewerID, *q.Favorited))
		}
		if q.InCart != nil {
			scopes = append(scopes, s.cart.Scope(viewerID, *q.InCart))
		}
	}

	recipes, total, err := s.repo.List(ctx, q, scopes, p.Offset(), p.Limit)
	if err != nil {
		return pagination.Page[Response]{}, err
	}

	items, err := s.represent(ctx, viewerID, recipes)
	if err != nil {
		return pagination.Page[Response]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) represent(ctx context.Context, viewerID int64, recipes []Recipe) ([]Response, error) {
	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	subscribed := map[int64]bool{}

	if viewerID > 0 && len(recipes) > 0 {
		recipeIDs := make([]int64, len(recipes))
		authorIDs := make([]int64, 0, len(recipes))
		for i := range recipes {
			recipeIDs[i] = recipes[i].ID
			authorIDs = append(authorIDs, recipes[i].AuthorID)
		}

		var err error
		if favorited, err = s.favorites.Contains(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.cart.Contains(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = s.subs.SubscribedTo(ctx, viewerID, uniqueIDs(authorIDs)); err != nil {
			return nil, err
		}
	}

	items := make([]Response, len(recipes))
	for i := range recipes {
		rec := &recipes[i]

		var author user.Response
		if rec.Author != nil {
			author = user.NewResponse(rec.Author, subscribed[rec.AuthorID])
		}

		tags := rec.Tags
		if tags == nil {
			tags = []tag.Tag{}
		}

		ingredients := make([]IngredientAmount, 0, len(rec.Ingredients))
		for _, edge := range rec.Ingredients {
			amount := IngredientAmount{ID: edge.IngredientID, Amount: edge.Amount}
			if edge.Ingredient != nil {
				amount.Name = edge.Ingredient.Name
				amount.MeasurementUnit = edge.Ingredient.MeasurementUnit
			}
			ingredients = append(ingredients, amount)
		}

		items[i] = Response{
			ID:               rec.ID,
			Tags:             tags,
			Author:           author,
			Ingredients:      ingredients,
			IsFavorited:      favorited[rec.ID],
			IsInShoppingCart: inCart[rec.ID],
			Name:             rec.Name,
			Image:            rec.Image,
			Text:             rec.Text,
			CookingTime:      rec.CookingTime,
			PubDate:          rec.PubDate,
		}
	}
	return items, nil
}

func (s *Service) discardImage(url string) {
	if url == "" {
		return
	}
	if err := s.images.Delete(url); err != nil {
		s.log.Warn("failed to remove recipe image", zap.String("image", url), zap.Error(err))
	}
}

// buildComposition validates every entry before any edge exists, so a bad
// entry anywhere in the payload rejects the whole write.
func buildComposition(entries []IngredientEntry) ([]RecipeIngredient, error) {
	for i, e := range entries {
		if e.Amount < 1 {
			return nil, ErrInvalidAmount.WithDetails(map[string]any{
				"index":      i,
				"ingredient": e.ID,
				"amount":     e.Amount,
			})
		}
	}

	seen := make(map[int64]bool, len(entries))
	edges := make([]RecipeIngredient, 0, len(entries))
	for i, e := range entries {
		if seen[e.ID] {
			return nil, ErrDuplicateIngredient.WithDetails(map[string]any{
				"index":      i,
				"ingredient": e.ID,
			})
		}
		seen[e.ID] = true
		edges = append(edges, RecipeIngredient{IngredientID: e.ID, Amount: e.Amount})
	}
	return edges, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
