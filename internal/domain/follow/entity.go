package follow

import (
	"time"

	"foodgram/internal/domain/user"
)

// Follow is a directed edge from a follower (UserID) to an author.
type Follow struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"not null;uniqueIndex:idx_follows_user_author"`
	AuthorID  int64      `gorm:"not null;index;uniqueIndex:idx_follows_user_author;check:chk_follows_not_self,user_id <> author_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	User      *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author    *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string {
	return "follows"
}
