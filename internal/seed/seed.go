// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"azeyco/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedPassword is the shared password for every generated account.
const seedPassword = "password123"

// Seeder populates the database with generated users and posts.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{db: db, rand: rand.New(rand.NewSource(seed))}
}

// ClearAll truncates the seeded tables. Post media goes first because of the
// foreign key.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.PostMedia{}, &models.Post{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n users with unique usernames and the shared password.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := fmt.Sprintf("%s_%s%d", strings.ToLower(first), strings.ToLower(last), s.rand.Intn(1000))
		user := &models.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password:  string(hash),
			FirstName: first,
			LastName:  last,
			Bio:       gofakeit.Sentence(8),
			IsActive:  true,
		}
		users = append(users, user)
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", n)
	return users, nil
}

// SeedPosts creates n posts spread across the given users, with a realistic
// mix of hashtags, media references, and visibilities.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute posts to")
	}

	visibilities := []string{
		models.VisibilityPublic, models.VisibilityPublic, models.VisibilityPublic,
		models.VisibilityFollowers, models.VisibilityPrivate,
	}
	topics := []string{"coffee", "travel", "golang", "music", "photography", "food", "running"}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]

		content := gofakeit.Sentence(6 + s.rand.Intn(10))
		if s.rand.Intn(2) == 0 {
			content = fmt.Sprintf("%s #%s", content, topics[s.rand.Intn(len(topics))])
		}
		if len(content) > models.MaxContentLength {
			content = content[:models.MaxContentLength]
		}

		post := &models.Post{
			AuthorID:       author.ID,
			AuthorUsername: author.Username,
			Content:        content,
			Visibility:     visibilities[s.rand.Intn(len(visibilities))],
			IsActive:       true,
			CreatedAt:      time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
		}
		if s.rand.Intn(4) == 0 {
			post.Media = []models.PostMedia{{
				URL:      fmt.Sprintf("/uploads/posts/%s.jpg", gofakeit.UUID()),
				Type:     "image",
				Filename: gofakeit.Word() + ".jpg",
				Size:     int64(50_000 + s.rand.Intn(1_500_000)),
				Position: 0,
			}}
		}
		posts = append(posts, post)
	}

	if err := s.db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", n)
	return posts, nil
}
