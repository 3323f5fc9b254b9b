package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yigit/gradtracker/internal/app/models"
	"github.com/yigit/gradtracker/internal/app/services"
)

type countFunc func(ctx context.Context) (int64, error)

func (f countFunc) Count(ctx context.Context) (int64, error) { return f(ctx) }

type recordingService struct {
	registered []models.GraduateSubmission
	err        error
}

func (s *recordingService) Register(_ context.Context, sub models.GraduateSubmission) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.registered = append(s.registered, sub)
	return int64(len(s.registered)), nil
}

func (s *recordingService) Search(context.Context, models.GraduateFilter) ([]models.GraduateSummary, error) {
	return nil, nil
}

func (s *recordingService) Verify(context.Context, int64, string) (*services.VerifyResult, error) {
	return nil, nil
}

func TestCreateDemoData(t *testing.T) {
	ctx := context.Background()

	t.Run("empty table is seeded", func(t *testing.T) {
		svc := &recordingService{}
		id, err := CreateDemoData(ctx, countFunc(func(context.Context) (int64, error) { return 0, nil }), svc, zerolog.Nop())
		if err != nil {
			t.Fatalf("CreateDemoData: %v", err)
		}
		if id != 1 || len(svc.registered) != 1 {
			t.Fatalf("id = %d, registered = %d", id, len(svc.registered))
		}
		if svc.registered[0] != DemoGraduate() {
			t.Errorf("unexpected submission %+v", svc.registered[0])
		}
	})

	t.Run("existing records are left alone", func(t *testing.T) {
		svc := &recordingService{}
		id, err := CreateDemoData(ctx, countFunc(func(context.Context) (int64, error) { return 3, nil }), svc, zerolog.Nop())
		if err != nil || id != 0 || len(svc.registered) != 0 {
			t.Errorf("id = %d, err = %v, registered = %d", id, err, len(svc.registered))
		}
	})

	t.Run("count failure", func(t *testing.T) {
		_, err := CreateDemoData(ctx, countFunc(func(context.Context) (int64, error) { return 0, errors.New("down") }), &recordingService{}, zerolog.Nop())
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("register failure", func(t *testing.T) {
		svc := &recordingService{err: errors.New("insert failed")}
		_, err := CreateDemoData(ctx, countFunc(func(context.Context) (int64, error) { return 0, nil }), svc, zerolog.Nop())
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
