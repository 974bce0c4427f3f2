package usecase

import (
	"time"

	"scribe/internal/domain/entity"
)

// UserView is the only rendering of a user. Credentials never leave the store.
type UserView struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func NewUserView(u *entity.User) UserView {
	return UserView{Name: u.Name, Role: u.Role.String()}
}

type BlogPostView struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Author   string     `json:"author"`
	Created  time.Time  `json:"created"`
	Modified *time.Time `json:"modified"`
	Tags     []string   `json:"tags"`
	Body     string     `json:"body"`
}

func NewBlogPostView(p *entity.BlogPost) BlogPostView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return BlogPostView{
		ID:       p.ID,
		Title:    p.Title,
		Author:   p.Author,
		Created:  p.Created,
		Modified: p.Modified,
		Tags:     tags,
		Body:     p.Body,
	}
}

type TagView struct {
	Name string `json:"name"`
}

func NewTagView(t *entity.Tag) TagView {
	return TagView{Name: t.Name}
}
