// Package seed creates demo data for development databases. It goes
// through the repositories so denormalized counters stay consistent
// with the edges and posts it creates.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pinboard/internal/auth"
	"pinboard/internal/models"
	"pinboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the login password of every seeded account.
const DefaultPassword = "Password123"

var tagPool = []string{
	"golang", "coffee", "hiking", "photography", "music",
	"cooking", "travel", "gaming", "reading", "cycling",
}

// Seeder populates the database with fake users, follows and posts.
type Seeder struct {
	db         *gorm.DB
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	rng        *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		followRepo: repository.NewFollowRepository(db),
		postRepo:   repository.NewPostRepository(db),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes seeded data. Follows and posts go first so user
// deletion never trips foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Follow{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n users with faked identities and a shared known
// password so seeded accounts can be logged into.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]models.User, error) {
	digest, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		middle := gofakeit.FirstName()
		user := models.User{
			FirstName:    gofakeit.FirstName(),
			MiddleName:   &middle,
			LastName:     gofakeit.LastName(),
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("seed%d.%s", i, gofakeit.Email()),
			Phone:        fmt.Sprintf("555-%04d-%04d", i, s.rng.Intn(10000)),
			Password:     digest,
			Bio:          gofakeit.Sentence(8),
			Tags:         s.randomTags(),
			ProfileImage: models.DefaultProfileImage,
		}
		if err := s.userRepo.Create(ctx, &user); err != nil {
			return nil, fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFollows wires a random mesh of follow edges, roughly perUser
// outgoing edges per account. Duplicate picks are skipped.
func (s *Seeder) SeedFollows(ctx context.Context, users []models.User, perUser int) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		for i := 0; i < perUser; i++ {
			target := users[s.rng.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			_, err := s.followRepo.Follow(ctx, follower.ID, target.ID)
			if err != nil {
				if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeConflict {
					continue
				}
				return created, fmt.Errorf("seeding follow: %w", err)
			}
			created++
		}
	}
	return created, nil
}

// SeedPosts creates n posts spread over the given users; roughly one
// in five is archived.
func (s *Seeder) SeedPosts(ctx context.Context, users []models.User, n int) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		post := models.Post{
			Name:     gofakeit.Company(),
			Address:  gofakeit.Address().Address,
			Phone:    gofakeit.Phone(),
			ImgURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
			Archived: s.rng.Intn(5) == 0,
			OwnerID:  owner.ID,
		}
		if err := s.postRepo.Create(ctx, &post); err != nil {
			return i, fmt.Errorf("seeding post %d: %w", i, err)
		}
	}
	return n, nil
}

func (s *Seeder) randomTags() string {
	count := 1 + s.rng.Intn(3)
	picked := make([]string, 0, count)
	for _, idx := range s.rng.Perm(len(tagPool))[:count] {
		picked = append(picked, tagPool[idx])
	}
	return strings.Join(picked, ",")
}
