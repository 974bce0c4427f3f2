package model

import (
	"time"
)

// BlogPostModel mirrors the 'blog_posts' table. Author is a snapshot of the creator's name, not a foreign key.
type BlogPostModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Title    string    `gorm:"type:text;not null"`
	Author   string    `gorm:"type:varchar(32);not null"`
	Created  time.Time `gorm:"not null"`
	Modified *time.Time
	Body     string `gorm:"type:text;not null"`

	Tags []BlogPostTagModel `gorm:"foreignKey:BlogPostID"`
}

// TableName explicitly sets the table name for GORM.
func (BlogPostModel) TableName() string {
	return "blog_posts"
}

// BlogPostTagModel mirrors the 'blog_post_tags' join table. Position keeps the order tags were given in.
type BlogPostTagModel struct {
	BlogPostID int64  `gorm:"primaryKey"`
	TagName    string `gorm:"type:varchar(64);primaryKey"`
	Position   int    `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (BlogPostTagModel) TableName() string {
	return "blog_post_tags"
}

// TagModel mirrors the 'tags' table.
type TagModel struct {
	Name string `gorm:"type:varchar(64);primaryKey"`
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}
