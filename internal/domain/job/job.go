package job

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusClosed Status = "CLOSED"
	StatusDraft  Status = "DRAFT"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULL_TIME"
	EmploymentPartTime   EmploymentType = "PART_TIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

type Salary struct {
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Currency Currency `json:"currency"`
}

type Post struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Location       string         `json:"location"`
	Description    string         `json:"description"`
	Requirements   []string       `json:"requirements"`
	Salary         Salary         `json:"salary"`
	EmploymentType EmploymentType `json:"employmentType"`
	Category       string         `json:"category"`
	ContactEmail   string         `json:"contactEmail"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      *time.Time     `json:"updatedAt"`
	Status         Status         `json:"status"`
	Applicants     []string       `json:"applicants"`
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Post) Clone() Post {
	p.Requirements = append([]string{}, p.Requirements...)
	p.Applicants = append([]string{}, p.Applicants...)
	if p.UpdatedAt != nil {
		updatedAt := *p.UpdatedAt
		p.UpdatedAt = &updatedAt
	}
	return p
}

// Patch lists the fields an update may replace. Nil fields keep their current value.
type Patch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Salary       *Salary   `json:"salary"`
	Status       *Status   `json:"status"`
}

// Apply merges the supplied fields into p.
func (patch Patch) Apply(p Post) Post {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Requirements != nil {
		p.Requirements = append([]string{}, (*patch.Requirements)...)
	}
	if patch.Salary != nil {
		p.Salary = *patch.Salary
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return p
}

type Filter struct {
	Category       string
	EmploymentType EmploymentType
	Status         Status
}

// Matches applies the list filters: category ignores case, the enumerated fields match exactly.
func (f Filter) Matches(p Post) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, p.Category) {
		return false
	}
	if f.EmploymentType != "" && f.EmploymentType != p.EmploymentType {
		return false
	}
	if f.Status != "" && f.Status != p.Status {
		return false
	}
	return true
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusClosed, StatusDraft:
		return true
	default:
		return false
	}
}

func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	default:
		return false
	}
}

func ValidCurrency(c Currency) bool {
	return c == CurrencyUSD || c == CurrencyEUR
}
