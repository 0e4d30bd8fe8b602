package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/pkg/pagination"
)

const reservedUsername = "me"

type tokenIssuer interface {
	GenerateToken(userID int64, email string) (string, error)
}

// SubscriptionLookup reports which of authorIDs the follower is subscribed to.
type SubscriptionLookup interface {
	SubscribedTo(ctx context.Context, followerID int64, authorIDs []int64) (map[int64]bool, error)
}

type Service struct {
	repo     Repository
	subs     SubscriptionLookup
	tokens   tokenIssuer
	hashCost int
}

func NewService(repo Repository, subs SubscriptionLookup, tokens tokenIssuer) *Service {
	return &Service{
		repo:     repo,
		subs:     subs,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if strings.EqualFold(username, reservedUsername) {
		return nil, ErrReservedUsername
	}

	if exists, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailTaken
	}
	if exists, err := s.repo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		Username:     username,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	resp := NewResponse(u, false)
	return &resp, nil
}

// Login checks credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(u.ID, u.Email)
}

func (s *Service) SetPassword(ctx context.Context, userID int64, req SetPasswordRequest) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) Me(ctx context.Context, viewerID int64) (*Response, error) {
	u, err := s.repo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	resp := NewResponse(u, false)
	return &resp, nil
}

// Get returns user id as seen by viewerID. viewerID 0 means anonymous.
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*Response, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subscribed, err := s.subscribedTo(ctx, viewerID, []int64{u.ID})
	if err != nil {
		return nil, err
	}
	resp := NewResponse(u, subscribed[u.ID])
	return &resp, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, p pagination.Params) (pagination.Page[Response], error) {
	users, total, err := s.repo.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return pagination.Page[Response]{}, err
	}

	ids := make([]int64, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := s.subscribedTo(ctx, viewerID, ids)
	if err != nil {
		return pagination.Page[Response]{}, err
	}

	items := make([]Response, len(users))
	for i := range users {
		items[i] = NewResponse(&users[i], subscribed[users[i].ID])
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) subscribedTo(ctx context.Context, viewerID int64, authorIDs []int64) (map[int64]bool, error) {
	if viewerID == 0 || len(authorIDs) == 0 || s.subs == nil {
		return map[int64]bool{}, nil
	}
	return s.subs.SubscribedTo(ctx, viewerID, authorIDs)
}
