package follow

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/domain/user"
	"foodgram/internal/pkg/dberr"
)

type Repository interface {
	Add(ctx context.Context, userID, authorID int64) error
	Remove(ctx context.Context, userID, authorID int64) error
	SubscribedTo(ctx context.Context, followerID int64, authorIDs []int64) (map[int64]bool, error)
	// ListAuthors returns the authors userID follows in subscription order.
	ListAuthors(ctx context.Context, userID int64, offset, limit int) ([]user.User, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID, authorID int64) error {
	err := r.db.WithContext(ctx).Create(&Follow{UserID: userID, AuthorID: authorID}).Error
	switch {
	case dberr.IsUniqueViolation(err):
		return ErrAlreadySubscribed
	case dberr.IsForeignKeyViolation(err):
		return user.ErrUserNotFound
	}
	return err
}

func (r *repository) Remove(ctx context.Context, userID, authorID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (r *repository) SubscribedTo(ctx context.Context, followerID int64, authorIDs []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return set, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&Follow{}).
		Where("user_id = ? AND author_id IN ?", followerID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (r *repository) ListAuthors(ctx context.Context, userID int64, offset, limit int) ([]user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Follow{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []user.User
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error
	return authors, total, err
}
