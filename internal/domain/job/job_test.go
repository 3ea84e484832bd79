package job

import "testing"

func TestFilterMatches(t *testing.T) {
	post := Post{Category: "Engineering", EmploymentType: EmploymentFullTime, Status: StatusActive}
	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"category ignores case", Filter{Category: "engineering"}, true},
		{"category mismatch", Filter{Category: "Design"}, false},
		{"employment type exact", Filter{EmploymentType: EmploymentFullTime}, true},
		{"employment type is case sensitive", Filter{EmploymentType: "full_time"}, false},
		{"status mismatch", Filter{Status: StatusClosed}, false},
		{"all filters", Filter{Category: "ENGINEERING", EmploymentType: EmploymentFullTime, Status: StatusActive}, true},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(post); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestPatchApplyKeepsUnsuppliedFields(t *testing.T) {
	post := Post{Title: "Engineer", Description: "Build things", Requirements: []string{"Go"}, Status: StatusActive}
	title := "Senior Engineer"
	status := StatusClosed
	updated := Patch{Title: &title, Status: &status}.Apply(post)
	if updated.Title != title || updated.Status != StatusClosed {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Description != post.Description || len(updated.Requirements) != 1 {
		t.Fatalf("unsupplied fields changed: %+v", updated)
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	post := Post{Requirements: []string{"Go"}, Applicants: []string{"a1"}}
	clone := post.Clone()
	clone.Applicants[0] = "changed"
	clone.Requirements = append(clone.Requirements, "SQL")
	if post.Applicants[0] != "a1" || len(post.Requirements) != 1 {
		t.Fatalf("clone aliases original: %+v", post)
	}
}
