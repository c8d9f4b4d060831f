// Package models contains data structures for the application's domain models.
package models

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Post type values, derived from content/media presence on every save.
const (
	PostTypeText  = "text"
	PostTypeImage = "image"
	PostTypeMixed = "mixed"
)

// Post visibility values. Only "public" is enforced on read paths; the other
// states are stored for forward compatibility with a follower graph.
const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// MaxContentLength is the hard cap on post content, counted in runes.
const MaxContentLength = 280

// MaxMediaPerPost caps the number of media attachments on a single post.
const MaxMediaPerPost = 10

// hashtagPattern matches "#" followed by word characters or letters in the
// Hebrew block (U+0590-U+05FF).
var hashtagPattern = regexp.MustCompile(`#[0-9A-Za-z_\x{0590}-\x{05FF}]+`)

// PostMedia is a single media attachment on a post.
type PostMedia struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PostID   uint   `gorm:"not null;index" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	Type     string `gorm:"not null;default:image" json:"type"`
	Filename string `gorm:"not null" json:"filename"`
	Size     int64  `gorm:"not null" json:"size"`
	Position int    `gorm:"not null" json:"-"`
}

// PostAuthor is the public author view attached to posts: a read-only
// projection of the users table limited to the fields exposed on post reads.
type PostAuthor struct {
	ID             uint    `json:"id"`
	Username       string  `json:"username"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	ProfilePicture *string `json:"profilePicture"`
}

// TableName maps the author view onto the users table.
func (PostAuthor) TableName() string { return "users" }

// Post is a short-form post. Hashtags and Type are re-derived on every save.
type Post struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	AuthorID       uint        `gorm:"not null;index:idx_posts_author_created" json:"authorId"`
	Author         *PostAuthor `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	AuthorUsername string      `gorm:"not null;index" json:"authorUsername"`
	Content        string      `gorm:"type:text;not null" json:"content"`
	Media          []PostMedia `gorm:"foreignKey:PostID" json:"media"`
	Type           string      `gorm:"not null;default:text" json:"type"`
	Hashtags       []string    `gorm:"serializer:json" json:"hashtags"`
	LikeCount      int         `gorm:"not null;default:0" json:"likeCount"`
	CommentCount   int         `gorm:"not null;default:0" json:"commentCount"`
	Visibility     string      `gorm:"not null;default:public;index:idx_posts_active_visibility" json:"visibility"`
	IsReported     bool        `gorm:"not null;default:false" json:"isReported"`
	IsActive       bool        `gorm:"not null;default:true;index:idx_posts_active_visibility" json:"isActive"`
	CreatedAt      time.Time   `gorm:"index:idx_posts_author_created,sort:desc" json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// BeforeSave re-derives hashtags and the post type so they always reflect
// the content and media being written.
func (p *Post) BeforeSave(*gorm.DB) error {
	p.Derive()
	return nil
}

// Derive recomputes Hashtags and Type from Content and Media.
func (p *Post) Derive() {
	p.Hashtags = ExtractHashtags(p.Content)

	if len(p.Media) > 0 {
		if strings.TrimSpace(p.Content) != "" {
			p.Type = PostTypeMixed
		} else {
			p.Type = PostTypeImage
		}
	} else {
		p.Type = PostTypeText
	}
}

// ExtractHashtags returns all hashtag tokens in content, in order of
// appearance. Returns an empty slice, never nil, so the field serializes as [].
func ExtractHashtags(content string) []string {
	tags := hashtagPattern.FindAllString(content, -1)
	if tags == nil {
		return []string{}
	}
	return tags
}

// IsValidVisibility reports whether v is one of the known visibility values.
func IsValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityFollowers, VisibilityPrivate:
		return true
	}
	return false
}
