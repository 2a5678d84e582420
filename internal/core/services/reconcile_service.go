package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Daily sweep time, local to the gym's timezone. Reads also reconcile
// on demand, the sweep just bounds staleness for members nobody looks
// at.
const reconcileSchedule = "30 8 * * *"

// ReconcileService runs the daily membership status sweep
type ReconcileService struct {
	memberService *MemberService
	cron          *cron.Cron
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(memberService *MemberService, loc *time.Location) *ReconcileService {
	return &ReconcileService{
		memberService: memberService,
		cron:          cron.New(cron.WithLocation(loc)),
	}
}

// Start registers the sweep and starts the scheduler. It also runs one
// sweep immediately so a desk app restarted after days offline catches
// up without waiting for the next tick.
func (s *ReconcileService) Start() error {
	if _, err := s.cron.AddFunc(reconcileSchedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("✅ Status sweep scheduled (%s)", reconcileSchedule)
	go s.sweep()
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *ReconcileService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Status sweep stopped")
}

func (s *ReconcileService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, err := s.memberService.ReconcileAll(ctx)
	if err != nil {
		log.Printf("⚠️  Status sweep failed: %v", err)
		return
	}
	if updated > 0 {
		log.Printf("✅ Status sweep updated %d member(s)", updated)
	}
}
