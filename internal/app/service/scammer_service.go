package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"scamdb/internal/common"
	"scamdb/internal/domain/model"
	"scamdb/internal/domain/repository"
	"scamdb/internal/platform/cache"

	"github.com/google/uuid"
)

// Discord snowflake IDs in this dataset are exactly 18 decimal digits.
var discordIDPattern = regexp.MustCompile(`^[0-9]{18}$`)

type ScammerService struct {
	scammerRepo repository.ScammerRepository
	statsCache  *cache.StatsCache // nil when redis is not configured
}

func NewScammerService(scammerRepo repository.ScammerRepository, statsCache *cache.StatsCache) *ScammerService {
	return &ScammerService{scammerRepo: scammerRepo, statsCache: statsCache}
}

type CreateScammerRequest struct {
	DiscordID   string `json:"discord_id"`
	DiscordName string `json:"discord_name"`
	ScamMethod  string `json:"scam_method"`
	Description string `json:"description"`
}

type UpdateScammerRequest struct {
	DiscordID   *string              `json:"discord_id"`
	DiscordName *string              `json:"discord_name"`
	ScamMethod  *string              `json:"scam_method"`
	Description *string              `json:"description"`
	Status      *model.ScammerStatus `json:"status"`
}

func (s *ScammerService) List(ctx context.Context, skip, limit int, searchTerm string) ([]model.Scammer, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.scammerRepo.List(ctx, skip, limit, searchTerm)
}

func (s *ScammerService) Create(ctx context.Context, req CreateScammerRequest) (*model.Scammer, error) {
	if !discordIDPattern.MatchString(req.DiscordID) {
		return nil, fmt.Errorf("discord_id must be exactly 18 digits: %w", common.ErrValidation)
	}

	// Pre-check keeps the error message specific; the unique constraint on
	// discord_id backstops the race between two concurrent creates.
	_, err := s.scammerRepo.FindByDiscordID(ctx, req.DiscordID)
	if err == nil {
		return nil, fmt.Errorf("scammer with this discord_id already exists: %w", common.ErrDuplicate)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check discord_id: %w", err)
	}

	now := time.Now().UTC()
	scammer := &model.Scammer{
		ID:          uuid.NewString(),
		DiscordID:   req.DiscordID,
		DiscordName: req.DiscordName,
		ScamMethod:  req.ScamMethod,
		Description: req.Description,
		Status:      model.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.scammerRepo.Create(ctx, scammer); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return scammer, nil
}

func (s *ScammerService) Get(ctx context.Context, id string) (*model.Scammer, error) {
	return s.scammerRepo.FindByID(ctx, id)
}

// Update applies a partial update: only supplied fields change. The updated
// timestamp is bumped only when at least one field was supplied.
func (s *ScammerService) Update(ctx context.Context, id string, req UpdateScammerRequest) (*model.Scammer, error) {
	scammer, err := s.scammerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DiscordID != nil && !discordIDPattern.MatchString(*req.DiscordID) {
		return nil, fmt.Errorf("discord_id must be exactly 18 digits: %w", common.ErrValidation)
	}

	changed := false
	if req.DiscordID != nil {
		scammer.DiscordID = *req.DiscordID
		changed = true
	}
	if req.DiscordName != nil {
		scammer.DiscordName = *req.DiscordName
		changed = true
	}
	if req.ScamMethod != nil {
		scammer.ScamMethod = *req.ScamMethod
		changed = true
	}
	if req.Description != nil {
		scammer.Description = *req.Description
		changed = true
	}
	if req.Status != nil {
		if *req.Status != model.StatusActive && *req.Status != model.StatusInactive {
			return nil, fmt.Errorf("status must be active or inactive: %w", common.ErrValidation)
		}
		scammer.Status = *req.Status
		changed = true
	}
	if !changed {
		return scammer, nil
	}

	scammer.UpdatedAt = time.Now().UTC()
	if err := s.scammerRepo.Update(ctx, scammer); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)
	return scammer, nil
}

func (s *ScammerService) Delete(ctx context.Context, id string) error {
	if err := s.scammerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	return nil
}

// Statistics reports record counts. Every stored record counts as verified.
func (s *ScammerService) Statistics(ctx context.Context) (*model.Statistics, error) {
	if s.statsCache != nil {
		if stats, ok := s.statsCache.Get(ctx); ok {
			return stats, nil
		}
	}

	total, err := s.scammerRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.scammerRepo.CountByStatus(ctx, model.StatusActive)
	if err != nil {
		return nil, err
	}

	stats := &model.Statistics{
		TotalRecords:  total,
		ActiveThreats: active,
		Verified:      total,
	}
	if s.statsCache != nil {
		s.statsCache.Set(ctx, stats)
	}
	return stats, nil
}

func (s *ScammerService) invalidateStats(ctx context.Context) {
	if s.statsCache != nil {
		s.statsCache.Invalidate(ctx)
	}
}
