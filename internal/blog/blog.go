// Package blog reads published posts from the backend.
package blog

import (
	"context"
	"fmt"

	"maison/internal/model"

	"github.com/rs/zerolog"
)

// AllCategories selects every post instead of one category.
const AllCategories = "All"

// Source is the subset of the backend the blog needs.
type Source interface {
	GetBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	GetBlogPostsByCategory(ctx context.Context, category string) ([]model.BlogPost, error)
}

// Service answers blog queries.
type Service struct {
	source Source
	logger zerolog.Logger
}

// NewService creates a blog service.
func NewService(source Source, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger.With().Str("component", "blog").Logger(),
	}
}

// Posts retrieves posts for the category, or every post for ""/"All".
func (s *Service) Posts(ctx context.Context, category string) ([]model.BlogPost, error) {
	var (
		posts []model.BlogPost
		err   error
	)

	if category == "" || category == AllCategories {
		posts, err = s.source.GetBlogPosts(ctx)
	} else {
		posts, err = s.source.GetBlogPostsByCategory(ctx, category)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to fetch blog posts")
		return nil, fmt.Errorf("failed to fetch blog posts: %w", err)
	}

	return posts, nil
}
