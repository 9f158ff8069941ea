package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/udisondev/emberfall/internal/game/campaign"
)

type CampaignRepositorySuite struct {
	suite.Suite
	ctx context.Context
}

func (s *CampaignRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	setupTestDB(s.T())
}

func (s *CampaignRepositorySuite) TestEmptySlot() {
	repo := NewCampaignRepository(testPool, 1)
	got, err := repo.LoadStatuses(s.ctx)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *CampaignRepositorySuite) TestSaveReplaces() {
	repo := NewCampaignRepository(testPool, 1)

	s.Require().NoError(repo.SaveStatuses(s.ctx, []string{"b", "a"}))
	got, err := repo.LoadStatuses(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, got)

	s.Require().NoError(repo.SaveStatuses(s.ctx, []string{"c"}))
	got, err = repo.LoadStatuses(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"c"}, got)

	s.Require().NoError(repo.SaveStatuses(s.ctx, nil))
	got, err = repo.LoadStatuses(s.ctx)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *CampaignRepositorySuite) TestSlotsAreIsolated() {
	one := NewCampaignRepository(testPool, 1)
	two := NewCampaignRepository(testPool, 2)

	s.Require().NoError(one.SaveStatuses(s.ctx, []string{"boss_dead"}))
	s.Require().NoError(two.SaveStatuses(s.ctx, []string{"gate_open"}))

	got, err := one.LoadStatuses(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"boss_dead"}, got)
}

func (s *CampaignRepositorySuite) TestManagerRoundTrip() {
	m := campaign.NewManager(NewCampaignRepository(testPool, 3))
	m.SetStatus("shrine_cleansed")
	s.Require().NoError(m.Save(s.ctx))

	restored := campaign.NewManager(NewCampaignRepository(testPool, 3))
	s.Require().NoError(restored.Load(s.ctx))
	s.True(restored.CheckStatus("shrine_cleansed"))
}

func TestCampaignRepositorySuite(t *testing.T) {
	suite.Run(t, new(CampaignRepositorySuite))
}
