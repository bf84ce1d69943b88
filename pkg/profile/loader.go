package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads projects.json and profile.json from dataDir and flattens them
// into the corpus source. Any missing file or malformed structure is an
// error; the caller treats it as fatal since the service cannot answer
// without its corpus.
func Load(dataDir string) (*Data, error) {
	projects, err := loadProjects(filepath.Join(dataDir, "projects.json"))
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	raw, err := loadProfile(filepath.Join(dataDir, "profile.json"))
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	desc := raw.BiographicalInformation.ProfessionalSummary.DetailedDescription
	if len(desc) == 0 {
		return nil, fmt.Errorf("profile.json: professional summary has no detailed_description")
	}

	data := &Data{
		bio:      desc[0],
		projects: projects,
	}

	for _, entry := range raw.ProfessionalExperience.Timeline {
		data.experience = append(data.experience, ExperienceEntry{
			Position: entry.Position.Title,
			Company:  entry.Company.Name,
			Period:   fmt.Sprintf("%s – %s", entry.Position.Period.Start, entry.Position.Period.End),
		})
	}

	for _, entry := range raw.EducationBackground.DegreePrograms {
		data.education = append(data.education, EducationEntry{
			Degree: entry.Degree.Title,
			School: entry.Institution.Name,
			Period: entry.Degree.Duration,
		})
	}

	return data, nil
}

// loadProjects accepts either a bare list or an object with a top-level
// "projects" key, matching both shapes seen in the wild.
func loadProjects(path string) ([]Project, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var list []Project
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Projects []Project `json:"projects"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if wrapped.Projects == nil {
		return nil, fmt.Errorf("%s must be a list or contain a top-level 'projects' key", filepath.Base(path))
	}
	return wrapped.Projects, nil
}

func loadProfile(path string) (*rawProfile, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw rawProfile
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return &raw, nil
}
