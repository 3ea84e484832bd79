package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/events"
)

type ApplicationService struct {
	repos  *Repositories
	events events.Publisher
	logger *zap.Logger
}

func NewApplicationService(repos *Repositories, publisher events.Publisher, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{repos: repos, events: publisher, logger: logger}
}

// ApplyInput carries the applicant supplied fields of an application.
type ApplyInput struct {
	ApplicantName string
	Email         string
	Phone         string
	ResumeURL     string
	CoverLetter   string
}

func (s *ApplicationService) Apply(ctx context.Context, jobID string, in ApplyInput) (*application.Application, error) {
	unlock := s.repos.lock()
	defer unlock()
	post, err := s.repos.Jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if post.Status != job.StatusActive {
		return nil, common.NewError(common.CodeInvalidState, "job post is not accepting applications", nil)
	}
	fields := map[string]string{}
	if blank(in.ApplicantName) {
		fields["applicantName"] = "applicantName is required"
	}
	if blank(in.Email) {
		fields["email"] = "email is required"
	} else if !validEmail(in.Email) {
		fields["email"] = "email must be a valid email"
	}
	if blank(in.ResumeURL) {
		fields["resumeUrl"] = "resumeUrl is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid application", fields)
	}

	existing, err := s.repos.Applications.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if other.JobID == jobID && strings.EqualFold(other.Email, in.Email) {
			return nil, common.NewError(common.CodeConflict, "already applied to this job", nil)
		}
	}

	app := application.Application{
		ID:            common.NewID(),
		JobID:         jobID,
		ApplicantName: in.ApplicantName,
		Email:         in.Email,
		Phone:         in.Phone,
		ResumeURL:     in.ResumeURL,
		CoverLetter:   in.CoverLetter,
		Status:        application.StatusPending,
		CreatedAt:     common.Now(),
	}
	if err := s.repos.Applications.Put(ctx, app); err != nil {
		return nil, err
	}
	post.Applicants = append(post.Applicants, app.ID)
	if err := s.repos.Jobs.Put(ctx, *post); err != nil {
		// An application must not outlive a failed update of job.applicants.
		if rollbackErr := s.repos.Applications.Remove(ctx, app.ID); rollbackErr != nil {
			s.logger.Error("failed to roll back application", zap.String("application_id", app.ID), zap.Error(rollbackErr))
		}
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.ApplicationSubmitted, map[string]string{"application_id": app.ID, "job_id": jobID})
	return &app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*application.Application, error) {
	return s.repos.Applications.Get(ctx, id)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID string) ([]application.Application, error) {
	if _, err := s.repos.Jobs.Get(ctx, jobID); err != nil {
		return nil, err
	}
	all, err := s.repos.Applications.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]application.Application, 0)
	for _, app := range all {
		if app.JobID == jobID {
			items = append(items, app)
		}
	}
	return items, nil
}

// UpdateStatus sets any of the known statuses; transitions are not restricted.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status application.Status) (*application.Application, error) {
	unlock := s.repos.lock()
	defer unlock()
	app, err := s.repos.Applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !application.ValidStatus(status) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be PENDING, REVIEWED, SHORTLISTED, or REJECTED"})
	}
	previous := app.Status
	app.Status = status
	now := common.Now()
	app.UpdatedAt = &now
	if err := s.repos.Applications.Put(ctx, *app); err != nil {
		return nil, err
	}
	publish(ctx, s.events, s.logger, events.ApplicationStatusChanged, map[string]string{"application_id": id, "from": string(previous), "to": string(status)})
	return app, nil
}
