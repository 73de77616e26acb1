package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"scamdb/internal/common"
	"scamdb/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockScammerRepo is a map-backed ScammerRepository.
type mockScammerRepo struct {
	byID map[string]*model.Scammer
}

func newMockScammerRepo() *mockScammerRepo {
	return &mockScammerRepo{byID: make(map[string]*model.Scammer)}
}

func (m *mockScammerRepo) Create(ctx context.Context, s *model.Scammer) error {
	for _, existing := range m.byID {
		if existing.DiscordID == s.DiscordID {
			return fmt.Errorf("scammer with this discord_id already exists: %w", common.ErrDuplicate)
		}
	}
	copy := *s
	m.byID[s.ID] = &copy
	return nil
}

func (m *mockScammerRepo) Update(ctx context.Context, s *model.Scammer) error {
	if _, ok := m.byID[s.ID]; !ok {
		return common.ErrNotFound
	}
	copy := *s
	m.byID[s.ID] = &copy
	return nil
}

func (m *mockScammerRepo) FindByID(ctx context.Context, id string) (*model.Scammer, error) {
	if s, ok := m.byID[id]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, common.ErrNotFound
}

func (m *mockScammerRepo) FindByDiscordID(ctx context.Context, discordID string) (*model.Scammer, error) {
	for _, s := range m.byID {
		if s.DiscordID == discordID {
			copy := *s
			return &copy, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *mockScammerRepo) List(ctx context.Context, skip, limit int, searchTerm string) ([]model.Scammer, error) {
	all := []model.Scammer{}
	term := strings.ToLower(searchTerm)
	for _, s := range m.byID {
		if term != "" &&
			!strings.Contains(strings.ToLower(s.DiscordID), term) &&
			!strings.Contains(strings.ToLower(s.DiscordName), term) {
			continue
		}
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if skip >= len(all) {
		return []model.Scammer{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockScammerRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *mockScammerRepo) CountAll(ctx context.Context) (int, error) {
	return len(m.byID), nil
}

func (m *mockScammerRepo) CountByStatus(ctx context.Context, status model.ScammerStatus) (int, error) {
	count := 0
	for _, s := range m.byID {
		if s.Status == status {
			count++
		}
	}
	return count, nil
}

const validDiscordID = "123456789012345678"

func validCreateRequest() CreateScammerRequest {
	return CreateScammerRequest{
		DiscordID:   validDiscordID,
		DiscordName: "BadActor#1234",
		ScamMethod:  "phishing",
		Description: "fake nitro links",
	}
}

func TestCreate_Success(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)

	scammer, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, scammer.ID)
	assert.Equal(t, validDiscordID, scammer.DiscordID)
	assert.Equal(t, model.StatusActive, scammer.Status)
	assert.False(t, scammer.CreatedAt.IsZero())
	assert.Equal(t, scammer.CreatedAt, scammer.UpdatedAt)
}

func TestCreate_InvalidDiscordID(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	for _, badID := range []string{"abc", "12345", "12345678901234567", "1234567890123456789", "12345678901234567x", ""} {
		req := validCreateRequest()
		req.DiscordID = badID
		_, err := svc.Create(ctx, req)
		require.Error(t, err, "discord_id %q should be rejected", badID)
		assert.True(t, errors.Is(err, common.ErrValidation), "discord_id %q: got %v", badID, err)
	}
}

func TestCreate_DuplicateDiscordID(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validCreateRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDuplicate))
}

func TestUpdate_PartialLeavesOtherFields(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	desc := "updated description"
	updated, err := svc.Update(ctx, created.ID, UpdateScammerRequest{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "updated description", updated.Description)
	assert.Equal(t, created.DiscordID, updated.DiscordID)
	assert.Equal(t, created.DiscordName, updated.DiscordName)
	assert.Equal(t, created.ScamMethod, updated.ScamMethod)
	assert.Equal(t, created.Status, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdate_EmptyPartialIsNoop(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateScammerRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
	assert.Equal(t, created, updated)
}

func TestUpdate_InvalidDiscordID(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	badID := "not-digits"
	_, err = svc.Update(ctx, created.ID, UpdateScammerRequest{DiscordID: &badID})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestUpdate_UnknownID(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)

	desc := "x"
	_, err := svc.Update(context.Background(), "missing", UpdateScammerRequest{Description: &desc})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpdate_InvalidStatus(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	bogus := model.ScammerStatus("banned")
	_, err = svc.Update(ctx, created.ID, UpdateScammerRequest{Status: &bogus})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestDelete(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, created.ID), common.ErrNotFound))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestStatistics(t *testing.T) {
	svc := NewScammerService(newMockScammerRepo(), nil)
	ctx := context.Background()

	ids := []string{"111111111111111111", "222222222222222222", "333333333333333333"}
	var last *model.Scammer
	for _, id := range ids {
		req := validCreateRequest()
		req.DiscordID = id
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		last = created
	}

	inactive := model.StatusInactive
	_, err := svc.Update(ctx, last.ID, UpdateScammerRequest{Status: &inactive})
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.ActiveThreats)
	assert.Equal(t, 3, stats.Verified) // every record counts as verified
}

func TestList_SearchAndPagination(t *testing.T) {
	repo := newMockScammerRepo()
	svc := NewScammerService(repo, nil)
	ctx := context.Background()

	base := time.Now().UTC()
	records := []struct {
		discordID string
		name      string
	}{
		{"111111111111111111", "PhishKing"},
		{"222222222222222222", "NitroScam"},
		{"333333333333333333", "phisherman"},
	}
	for i, rec := range records {
		repo.byID[fmt.Sprintf("id-%d", i)] = &model.Scammer{
			ID:          fmt.Sprintf("id-%d", i),
			DiscordID:   rec.discordID,
			DiscordName: rec.name,
			ScamMethod:  "other",
			Status:      model.StatusActive,
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
			UpdatedAt:   base.Add(time.Duration(i) * time.Second),
		}
	}

	// Case-insensitive substring on discord_name
	found, err := svc.List(ctx, 0, 0, "PHISH")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Substring on discord_id
	found, err = svc.List(ctx, 0, 0, "2222")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "NitroScam", found[0].DiscordName)

	// Pagination, newest first
	page, err := svc.List(ctx, 1, 1, "")
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "NitroScam", page[0].DiscordName)
}
