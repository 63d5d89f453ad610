package models

import "time"

// Review holds a single user's verdict on a title. The composite unique
// index is the backstop for the one-review-per-author-per-title rule: a
// racing duplicate insert fails at the database even when the service-level
// pre-check passed.
type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID   int64     `json:"title_id" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	AuthorID  string    `json:"author_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_title_author"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"title,omitempty" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
