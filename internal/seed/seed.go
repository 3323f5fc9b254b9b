package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/gradtracker/internal/app/models"
	appServices "github.com/yigit/gradtracker/internal/app/services"
)

// RecordCounter reports how many graduate records are stored
type RecordCounter interface {
	Count(ctx context.Context) (int64, error)
}

// DemoAnswer is the security answer of the demo record
const DemoAnswer = "Fluffy"

// DemoGraduate is registered into an empty database when demo seeding is on
func DemoGraduate() appModels.GraduateSubmission {
	return appModels.GraduateSubmission{
		GraduationYear:   "2023",
		Name:             "Li Hua",
		Highschool:       "No.1 High School",
		ClassName:        "Class 3",
		DestinationType:  appModels.DestinationUniversity,
		Destination:      "Peking University",
		Description:      "Computer Science",
		SecurityQuestion: "What is my pet's name?",
		SecurityAnswer:   DemoAnswer,
	}
}

// CreateDemoData registers the demo graduate if the table is empty.
// It goes through the service so the record is validated and encrypted
// like any other registration. Returns the new id, or 0 if nothing was seeded.
func CreateDemoData(ctx context.Context, counter RecordCounter, svc appServices.GraduateService, lgr zerolog.Logger) (int64, error) {
	n, err := counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting graduate records: %w", err)
	}
	if n > 0 {
		lgr.Debug().Int64("records", n).Msg("Graduate records present, skipping demo data")
		return 0, nil
	}

	id, err := svc.Register(ctx, DemoGraduate())
	if err != nil {
		return 0, fmt.Errorf("error creating demo graduate: %w", err)
	}

	lgr.Info().Int64("graduateID", id).Msg("Demo graduate created")
	return id, nil
}
