// Command main runs the database seeder for Pinboard.
package main

import (
	"context"
	"flag"
	"log"

	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	followsPerUser := flag.Int("follows", 3, "Outgoing follow edges per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, ~%d follows/user, clean=%v",
		*numUsers, *numPosts, *followsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(ctx, *numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}

	follows, err := s.SeedFollows(ctx, users, *followsPerUser)
	if err != nil {
		log.Fatalf("Follow seeding failed: %v", err)
	}

	posts, err := s.SeedPosts(ctx, users, *numPosts)
	if err != nil {
		log.Fatalf("Post seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d follows, %d posts", len(users), follows, posts)
	log.Printf("All accounts log in with password %q", seed.DefaultPassword)
}
