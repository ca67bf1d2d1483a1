package repository

import (
	"context"
	"testing"

	"pinboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateIncrementsOwnerCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")

	post := &models.Post{
		Name:    "Cafe",
		Address: "1 Main St",
		Phone:   "555-1000",
		ImgURL:  "http://img/1.png",
		OwnerID: alice.ID,
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)

	assert.Equal(t, 1, reloadUser(t, db, alice.ID).PostsCount)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafe", got.Name)
	assert.False(t, got.Archived)
}

func TestPostGetNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	assertCode(t, err, models.CodeNotFound)
}

func TestPostDeleteDecrementsOwnerCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	post := &models.Post{Name: "Cafe", Address: "1 Main St", OwnerID: alice.ID}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post))
	assert.Equal(t, 0, reloadUser(t, db, alice.ID).PostsCount)

	_, err := repo.GetByID(ctx, post.ID)
	assertCode(t, err, models.CodeNotFound)
}

func TestPostDeleteFloorsCountAtZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	post := &models.Post{Name: "Cafe", Address: "1 Main St", OwnerID: alice.ID}
	require.NoError(t, repo.Create(ctx, post))

	// Simulate a drifted counter already at zero.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).
		UpdateColumn("posts_count", 0).Error)

	require.NoError(t, repo.Delete(ctx, post))
	assert.Equal(t, 0, reloadUser(t, db, alice.ID).PostsCount, "postsCount never goes negative")
}

func TestPostListByOwnerFiltersArchived(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")

	live := &models.Post{Name: "Cafe", Address: "1 Main St", OwnerID: alice.ID}
	require.NoError(t, repo.Create(ctx, live))

	archived := &models.Post{Name: "Old Spot", Address: "2 Side St", OwnerID: alice.ID, Archived: true}
	require.NoError(t, repo.Create(ctx, archived))

	other := &models.Post{Name: "Bob's Bar", Address: "3 High St", OwnerID: bob.ID}
	require.NoError(t, repo.Create(ctx, other))

	active, err := repo.ListByOwner(ctx, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Cafe", active[0].Name)

	stored, err := repo.ListByOwner(ctx, alice.ID, true)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Old Spot", stored[0].Name)
}

func TestPostMutationsInvalidateUsernameCache(t *testing.T) {
	withCache(t)
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	_, err := userRepo.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	post := &models.Post{Name: "Cafe", Address: "1 Main St", OwnerID: alice.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	view, err := userRepo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, view.PostsCount)

	require.NoError(t, postRepo.Delete(ctx, post))

	view, err = userRepo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, view.PostsCount)
}

func TestPostUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	post := &models.Post{Name: "Cafe", Address: "1 Main St", OwnerID: alice.ID}
	require.NoError(t, repo.Create(ctx, post))

	post.Name = "Cafe Deluxe"
	post.Archived = true
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafe Deluxe", got.Name)
	assert.True(t, got.Archived)
	assert.Equal(t, alice.ID, got.OwnerID)
}
