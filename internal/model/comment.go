package model

import "time"

// Comment is attached to a post. Comments are immutable once created; the
// only write operation after creation is deletion.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	Author *User `json:"-" gorm:"foreignKey:AuthorID"`
}
