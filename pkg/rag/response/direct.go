package response

import (
	"fmt"
	"strings"

	"living-resume-be/pkg/profile"
)

// DirectAnswerer composes canned replies straight from the structured resume
// data. No retrieval, no LLM call.
type DirectAnswerer struct {
	data *profile.Data
}

// NewDirectAnswerer creates a direct answerer over the loaded resume data
func NewDirectAnswerer(data *profile.Data) *DirectAnswerer {
	return &DirectAnswerer{data: data}
}

// Bio returns the biographical summary verbatim.
func (d *DirectAnswerer) Bio() string {
	return d.data.Bio()
}

// Projects lists every project title, comma-separated.
func (d *DirectAnswerer) Projects() string {
	titles := make([]string, 0, len(d.data.Projects()))
	for _, p := range d.data.Projects() {
		titles = append(titles, p.Title)
	}
	return fmt.Sprintf("My key projects are: %s.", strings.Join(titles, ", "))
}

// Experience summarizes the experience timeline, semicolon-separated.
func (d *DirectAnswerer) Experience() string {
	parts := make([]string, 0, len(d.data.Experience()))
	for _, e := range d.data.Experience() {
		parts = append(parts, fmt.Sprintf("%s at %s (%s)", e.Position, e.Company, e.Period))
	}
	return fmt.Sprintf("Here's my experience: %s.", strings.Join(parts, "; "))
}

// Education summarizes the degree programs, semicolon-separated.
func (d *DirectAnswerer) Education() string {
	parts := make([]string, 0, len(d.data.Education()))
	for _, e := range d.data.Education() {
		parts = append(parts, fmt.Sprintf("%s from %s (%s)", e.Degree, e.School, e.Period))
	}
	return fmt.Sprintf("Here's my education: %s.", strings.Join(parts, "; "))
}
