package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/domain"
)

type fakeSessionRepository struct {
	sessions map[string]*domain.GameSession
	nextID   int
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*domain.GameSession)}
}

func (f *fakeSessionRepository) Create(_ context.Context, gs *domain.GameSession) error {
	f.nextID++
	gs.ID = fmt.Sprintf("session-%d", f.nextID)
	stored := *gs
	f.sessions[gs.ID] = &stored
	return nil
}

func (f *fakeSessionRepository) GetByID(_ context.Context, id string) (*domain.GameSession, error) {
	gs, ok := f.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *gs
	return &copied, nil
}

func (f *fakeSessionRepository) ListByCampaign(_ context.Context, campaignID string, _, _ int) ([]domain.GameSession, error) {
	var out []domain.GameSession
	for _, gs := range f.sessions {
		if gs.CampaignID == campaignID {
			out = append(out, *gs)
		}
	}
	return out, nil
}

func (f *fakeSessionRepository) Update(_ context.Context, gs *domain.GameSession) error {
	if _, ok := f.sessions[gs.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *gs
	f.sessions[gs.ID] = &stored
	return nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.sessions, id)
	return nil
}

type fakeCampaignRepository struct {
	campaigns map[string]*domain.Campaign
}

func (f *fakeCampaignRepository) Create(_ context.Context, cp *domain.Campaign) error {
	stored := *cp
	f.campaigns[cp.ID] = &stored
	return nil
}

func (f *fakeCampaignRepository) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	cp, ok := f.campaigns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *cp
	return &copied, nil
}

func (f *fakeCampaignRepository) ListByGM(_ context.Context, gmID string, _, _ int) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, cp := range f.campaigns {
		if cp.GMID == gmID {
			out = append(out, *cp)
		}
	}
	return out, nil
}

func (f *fakeCampaignRepository) Update(_ context.Context, cp *domain.Campaign) error {
	if _, ok := f.campaigns[cp.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *cp
	f.campaigns[cp.ID] = &stored
	return nil
}

func (f *fakeCampaignRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.campaigns[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.campaigns, id)
	return nil
}

func newTestSessionService() (*SessionService, *fakeSessionRepository) {
	sessions := newFakeSessionRepository()
	campaigns := &fakeCampaignRepository{campaigns: map[string]*domain.Campaign{
		"camp-1": {ID: "camp-1", GMID: "gm-1", Name: "Curse of the Crag", Status: domain.CampaignStatusActive},
	}}
	return NewSessionService(sessions, campaigns, nil, zap.NewNop()), sessions
}

func scheduleTestSession(t *testing.T, svc *SessionService) *domain.GameSession {
	t.Helper()
	gs, err := svc.ScheduleSession(context.Background(), "gm-1", "camp-1", &domain.GameSession{
		Title:           "Session Zero",
		ScheduledAt:     time.Now().Add(24 * time.Hour),
		DurationMinutes: 180,
	})
	if err != nil {
		t.Fatalf("ScheduleSession: %v", err)
	}
	return gs
}

func TestSessionServiceSchedule(t *testing.T) {
	t.Run("new sessions start scheduled", func(t *testing.T) {
		svc, _ := newTestSessionService()
		gs := scheduleTestSession(t, svc)
		if gs.Status != domain.SessionStatusScheduled {
			t.Errorf("Status = %q, want %q", gs.Status, domain.SessionStatusScheduled)
		}
	})

	t.Run("foreign campaign reads as not found", func(t *testing.T) {
		svc, _ := newTestSessionService()
		_, err := svc.ScheduleSession(context.Background(), "gm-2", "camp-1", &domain.GameSession{
			Title:           "Heist",
			ScheduledAt:     time.Now(),
			DurationMinutes: 60,
		})
		if domainErrStatus(t, err) != 404 {
			t.Errorf("expected 404 for foreign campaign, got %v", err)
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		svc, _ := newTestSessionService()
		_, err := svc.ScheduleSession(context.Background(), "gm-1", "camp-1", &domain.GameSession{
			Title:           "  ",
			ScheduledAt:     time.Now(),
			DurationMinutes: 60,
		})
		if domainErrStatus(t, err) != 400 {
			t.Errorf("expected 400, got %v", err)
		}
	})
}

func TestSessionServiceStatusTransitions(t *testing.T) {
	setStatus := func(t *testing.T, svc *SessionService, id string, status domain.SessionStatus) error {
		t.Helper()
		_, err := svc.UpdateSession(context.Background(), "gm-1", id, domain.SessionUpdate{Status: &status})
		return err
	}

	t.Run("scheduled can start then complete", func(t *testing.T) {
		svc, _ := newTestSessionService()
		gs := scheduleTestSession(t, svc)

		if err := setStatus(t, svc, gs.ID, domain.SessionStatusActive); err != nil {
			t.Fatalf("start: %v", err)
		}
		if err := setStatus(t, svc, gs.ID, domain.SessionStatusCompleted); err != nil {
			t.Fatalf("complete: %v", err)
		}
	})

	t.Run("scheduled cannot complete directly", func(t *testing.T) {
		svc, _ := newTestSessionService()
		gs := scheduleTestSession(t, svc)

		err := setStatus(t, svc, gs.ID, domain.SessionStatusCompleted)
		if domainErrStatus(t, err) != 400 {
			t.Errorf("expected 400 for invalid transition, got %v", err)
		}
	})

	t.Run("terminal sessions are immutable", func(t *testing.T) {
		svc, _ := newTestSessionService()
		gs := scheduleTestSession(t, svc)

		if err := setStatus(t, svc, gs.ID, domain.SessionStatusCancelled); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		err := setStatus(t, svc, gs.ID, domain.SessionStatusActive)
		if domainErrStatus(t, err) != 400 {
			t.Errorf("expected 400 after cancellation, got %v", err)
		}
	})
}
