package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

func newTestCampaignService() *CampaignService {
	repo := &fakeCampaignRepository{campaigns: make(map[string]*domain.Campaign)}
	return NewCampaignService(repo, nil, zap.NewNop())
}

func TestCampaignService(t *testing.T) {
	t.Run("defaults to active status", func(t *testing.T) {
		svc := newTestCampaignService()
		cp, err := svc.CreateCampaign(context.Background(), "gm-1", &domain.Campaign{Name: "Curse of the Crag"})
		if err != nil {
			t.Fatalf("CreateCampaign: %v", err)
		}
		if cp.Status != domain.CampaignStatusActive {
			t.Errorf("Status = %q, want %q", cp.Status, domain.CampaignStatusActive)
		}
		if cp.GMID != "gm-1" {
			t.Errorf("GMID = %q, want gm-1", cp.GMID)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc := newTestCampaignService()
		_, err := svc.CreateCampaign(context.Background(), "gm-1", &domain.Campaign{Name: "  "})
		if domainErrStatus(t, err) != 400 {
			t.Errorf("expected 400, got %v", err)
		}
	})

	t.Run("invalid status update rejected", func(t *testing.T) {
		svc := newTestCampaignService()
		cp, err := svc.CreateCampaign(context.Background(), "gm-1", &domain.Campaign{ID: "camp-1", Name: "Crag"})
		if err != nil {
			t.Fatalf("CreateCampaign: %v", err)
		}

		bogus := domain.CampaignStatus("PAUSED")
		if _, err := svc.UpdateCampaign(context.Background(), "gm-1", cp.ID, domain.CampaignUpdate{Status: &bogus}); domainErrStatus(t, err) != 400 {
			t.Errorf("expected 400 for bogus status, got %v", err)
		}

		archived := domain.CampaignStatusArchived
		updated, err := svc.UpdateCampaign(context.Background(), "gm-1", cp.ID, domain.CampaignUpdate{Status: &archived})
		if err != nil {
			t.Fatalf("UpdateCampaign: %v", err)
		}
		if updated.Status != domain.CampaignStatusArchived {
			t.Errorf("Status = %q, want %q", updated.Status, domain.CampaignStatusArchived)
		}
	})

	t.Run("foreign campaign reads as not found", func(t *testing.T) {
		svc := newTestCampaignService()
		cp, err := svc.CreateCampaign(context.Background(), "gm-1", &domain.Campaign{ID: "camp-1", Name: "Crag"})
		if err != nil {
			t.Fatalf("CreateCampaign: %v", err)
		}
		if _, err := svc.GetCampaign(context.Background(), "gm-2", cp.ID); domainErrStatus(t, err) != 404 {
			t.Errorf("expected 404, got %v", err)
		}
	})
}
