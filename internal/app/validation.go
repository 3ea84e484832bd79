package app

import (
	"regexp"
	"strings"

	"jobboard/internal/domain/job"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func validateNewPost(p job.Post) map[string]string {
	fields := map[string]string{}
	if blank(p.Title) {
		fields["title"] = "title is required"
	}
	if blank(p.Company) {
		fields["company"] = "company is required"
	}
	if blank(p.Location) {
		fields["location"] = "location is required"
	}
	if blank(p.Description) {
		fields["description"] = "description is required"
	}
	if p.Requirements == nil {
		fields["requirements"] = "requirements must be a list"
	}
	validateSalary(p.Salary, fields)
	if !job.ValidEmploymentType(p.EmploymentType) {
		fields["employmentType"] = "employmentType must be FULL_TIME, PART_TIME, CONTRACT, or INTERNSHIP"
	}
	if blank(p.ContactEmail) {
		fields["contactEmail"] = "contactEmail is required"
	} else if !validEmail(p.ContactEmail) {
		fields["contactEmail"] = "contactEmail must be a valid email"
	}
	return fields
}

func validateSalary(s job.Salary, fields map[string]string) {
	if s.Min < 0 {
		fields["salary.min"] = "salary.min must be >= 0"
	}
	if s.Max < s.Min {
		fields["salary.max"] = "salary.max must be >= salary.min"
	}
	if !job.ValidCurrency(s.Currency) {
		fields["salary.currency"] = "salary.currency must be USD or EUR"
	}
}

func validatePatch(patch job.Patch) map[string]string {
	fields := map[string]string{}
	if patch.Title != nil && blank(*patch.Title) {
		fields["title"] = "title must be a non-empty string"
	}
	if patch.Description != nil && blank(*patch.Description) {
		fields["description"] = "description must be a non-empty string"
	}
	if patch.Requirements != nil && *patch.Requirements == nil {
		fields["requirements"] = "requirements must be a list"
	}
	if patch.Salary != nil {
		validateSalary(*patch.Salary, fields)
	}
	if patch.Status != nil && !job.ValidStatus(*patch.Status) {
		fields["status"] = "status must be ACTIVE, CLOSED, or DRAFT"
	}
	return fields
}
