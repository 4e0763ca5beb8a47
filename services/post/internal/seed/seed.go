// Package seed loads demo authors and posts. It is used by cmd/seed against
// postgres and by the in-memory store on startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsdesk/pkg/logger"
	"newsdesk/services/post/internal/entity"
	"newsdesk/services/post/internal/repo/persistent"
	"newsdesk/services/post/internal/usecase"
)

const DemoPassword = "password123"

type demoAuthor struct {
	name  string
	email string
	image string
	role  entity.Role
}

var demoAuthors = []demoAuthor{
	{"Jane Doe", "jane@newsdesk.test", "https://i.pravatar.cc/150?u=jane", entity.RoleAuthor},
	{"Sam Lee", "sam@newsdesk.test", "https://i.pravatar.cc/150?u=sam", entity.RoleAuthor},
	{"Ada Admin", "admin@newsdesk.test", "", entity.RoleSuperAdmin},
}

type demoPost struct {
	author   int
	hoursAgo int
	views    int64
	post     entity.Post
}

func demoPosts() []demoPost {
	return []demoPost{
		{author: 0, hoursAgo: 2, views: 128, post: entity.Post{
			Title:    "Coffee Prices Hit 10-Year High",
			Excerpt:  "Arabica futures climbed as drought hit Brazilian harvests.",
			Content:  "Arabica coffee futures rose to their highest level in a decade on Tuesday as dry weather in Brazil cut harvest forecasts.",
			Category: "markets",
			Tags:     []string{"coffee", "commodities", "brazil"},
		}},
		{author: 1, hoursAgo: 5, views: 342, post: entity.Post{
			Type:     entity.PostTypeMarketWatch,
			Title:    "Oil Slides on Demand Worries",
			Excerpt:  "Brent fell for a third straight session.",
			Content:  "Crude benchmarks extended losses after weaker factory data from Asia.",
			Category: "markets",
			Tags:     []string{"oil", "commodities"},
			MarketWatch: &entity.MarketWatch{
				MarketImpact: "bearish",
				DataPoints: []entity.DataPoint{
					{Label: "Brent", Value: "$81.20"},
					{Label: "WTI", Value: "$77.05"},
				},
			},
		}},
		{author: 0, hoursAgo: 20, views: 57, post: entity.Post{
			Type:     entity.PostTypeOpinion,
			Title:    "Why Central Banks Should Wait",
			Excerpt:  "Cutting too early risks a second wave of inflation.",
			Content:  "Inflation has cooled, but services prices remain sticky.",
			Category: "economy",
			Tags:     []string{"rates", "inflation"},
			Opinion:  &entity.Opinion{Topic: "Monetary policy", AuthorTitle: "Senior Economics Editor"},
		}},
		{author: 1, hoursAgo: 1, views: 9, post: entity.Post{
			Type:     entity.PostTypeLatest,
			Title:    "Gold Edges Higher Ahead of Jobs Data",
			Content:  "Bullion traders positioned cautiously before the payrolls report.",
			Category: "markets",
			Tags:     []string{"gold"},
		}},
		{author: 0, hoursAgo: 0, post: entity.Post{
			Title:    "Draft: Cocoa Supply Outlook",
			Content:  "Work in progress.",
			Category: "markets",
			Tags:     []string{"cocoa", "commodities"},
			IsDraft:  true,
		}},
	}
}

// Run creates the demo authors and posts. Existing authors and slugs are
// kept, so running it twice is harmless.
func Run(ctx context.Context, authors persistent.AuthorRepository, posts persistent.PostRepository, postUseCase usecase.PostUseCase, log *logger.Logger) error {
	viewers := make([]entity.Viewer, 0, len(demoAuthors))
	for _, a := range demoAuthors {
		author, err := ensureAuthor(ctx, authors, a)
		if err != nil {
			return err
		}
		viewers = append(viewers, entity.Viewer{ID: author.ID, Role: author.Role})
	}

	now := time.Now().UTC()
	for _, p := range demoPosts() {
		post := p.post
		post.PublishDate = now.Add(-time.Duration(p.hoursAgo) * time.Hour)

		created, err := postUseCase.CreatePost(ctx, viewers[p.author], &post)
		if errors.Is(err, entity.ErrDuplicateSlug) {
			log.Info("Post %q already exists, skipping", post.Title)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to seed post %q: %w", post.Title, err)
		}

		if p.views > 0 {
			if err := posts.IncrementViews(ctx, created.ID, p.views); err != nil {
				return fmt.Errorf("failed to seed views for %q: %w", post.Title, err)
			}
		}
		log.Info("Created post: %s", created.Slug)
	}

	postUseCase.Wait()
	return nil
}

func ensureAuthor(ctx context.Context, authors persistent.AuthorRepository, a demoAuthor) (*entity.Author, error) {
	existing, err := authors.GetByEmail(ctx, a.email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entity.ErrAuthorNotFound) {
		return nil, err
	}

	hash, err := usecase.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	author := &entity.Author{
		Name:         a.name,
		Email:        a.email,
		ProfileImage: a.image,
		Role:         a.role,
		PasswordHash: hash,
	}
	if err := authors.Create(ctx, author); err != nil {
		return nil, fmt.Errorf("failed to create author %s: %w", a.email, err)
	}
	return author, nil
}
