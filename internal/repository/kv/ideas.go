package kv

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// IdeaRepository implements domain.IdeaRepository over the store.
type IdeaRepository struct {
	ideas store.Collection[domain.Idea]
}

// NewIdeaRepository creates a store-backed IdeaRepository.
func NewIdeaRepository(s *store.Store) *IdeaRepository {
	return &IdeaRepository{
		ideas: store.NewCollection[domain.Idea](s, store.CollectionIdeas),
	}
}

func (r *IdeaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	if idea.ID == "" {
		idea.ID = newID("idea")
	}
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = time.Now().UTC()
	}
	idea.UpdatedAt = idea.CreatedAt

	if err := r.ideas.Put(ctx, idea.ID, idea); err != nil {
		return fmt.Errorf("create idea: %w", err)
	}
	return nil
}

func (r *IdeaRepository) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	return r.ideas.Get(ctx, id)
}

// GetByCreator returns the creator's ideas, newest first. The sort happens
// here; the store's key order says nothing about creation time.
func (r *IdeaRepository) GetByCreator(ctx context.Context, creatorID string) ([]domain.Idea, error) {
	var ideas []domain.Idea
	err := r.ideas.Scan(ctx, func(_ string, idea domain.Idea) error {
		if idea.CreatorID == creatorID {
			ideas = append(ideas, idea)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan ideas: %w", err)
	}
	sortNewestFirst(ideas, func(i domain.Idea) time.Time { return i.CreatedAt })
	return ideas, nil
}

// GetAll returns every idea, newest first.
func (r *IdeaRepository) GetAll(ctx context.Context) ([]domain.Idea, error) {
	var ideas []domain.Idea
	err := r.ideas.Scan(ctx, func(_ string, idea domain.Idea) error {
		ideas = append(ideas, idea)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan ideas: %w", err)
	}
	sortNewestFirst(ideas, func(i domain.Idea) time.Time { return i.CreatedAt })
	return ideas, nil
}

// Update merges the patch into the stored idea and refreshes UpdatedAt.
func (r *IdeaRepository) Update(ctx context.Context, id string, patch domain.IdeaPatch) error {
	idea, err := r.ideas.Get(ctx, id)
	if err != nil {
		return err
	}

	if patch.Title != nil {
		idea.Title = *patch.Title
	}
	if patch.Description != nil {
		idea.Description = *patch.Description
	}
	if patch.Category != nil {
		idea.Category = *patch.Category
	}
	if patch.Tags != nil {
		idea.Tags = *patch.Tags
	}
	if patch.FeasibilityScore != nil {
		idea.FeasibilityScore = *patch.FeasibilityScore
	}
	if patch.MarketSize != nil {
		idea.MarketSize = *patch.MarketSize
	}
	if patch.CompetitionLevel != nil {
		idea.CompetitionLevel = *patch.CompetitionLevel
	}
	if patch.DevelopmentComplexity != nil {
		idea.DevelopmentComplexity = *patch.DevelopmentComplexity
	}
	if patch.FundingRequired != nil {
		idea.FundingRequired = *patch.FundingRequired
	}
	if patch.EquityOffered != nil {
		idea.EquityOffered = *patch.EquityOffered
	}
	if patch.Status != nil {
		idea.Status = *patch.Status
	}
	if patch.NFTTokenID != nil {
		idea.NFTTokenID = *patch.NFTTokenID
	}
	idea.UpdatedAt = time.Now().UTC()

	return r.ideas.Put(ctx, id, idea)
}

// sortNewestFirst orders items by their CreatedAt, descending.
func sortNewestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
