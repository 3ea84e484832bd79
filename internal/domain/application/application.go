package application

import "time"

type Status string

const (
	StatusPending     Status = "PENDING"
	StatusReviewed    Status = "REVIEWED"
	StatusShortlisted Status = "SHORTLISTED"
	StatusRejected    Status = "REJECTED"
)

type Application struct {
	ID            string     `json:"id"`
	JobID         string     `json:"jobId"`
	ApplicantName string     `json:"applicantName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	ResumeURL     string     `json:"resumeUrl"`
	CoverLetter   string     `json:"coverLetter"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

func (a Application) Clone() Application {
	if a.UpdatedAt != nil {
		updatedAt := *a.UpdatedAt
		a.UpdatedAt = &updatedAt
	}
	return a
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected:
		return true
	default:
		return false
	}
}
