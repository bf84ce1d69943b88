package profile

// Project is one portfolio project record from projects.json.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExperienceEntry is a flattened view of one professional experience record.
type ExperienceEntry struct {
	Position string
	Company  string
	Period   string
}

// EducationEntry is a flattened view of one degree program record.
type EducationEntry struct {
	Degree string
	School string
	Period string
}

// rawProfile mirrors the nested resume object in profile.json. Only the
// fields the chat service reads are mapped.
type rawProfile struct {
	BiographicalInformation struct {
		ProfessionalSummary struct {
			DetailedDescription []string `json:"detailed_description"`
		} `json:"professional_summary"`
	} `json:"biographical_information"`

	ProfessionalExperience struct {
		Timeline []struct {
			Position struct {
				Title  string `json:"title"`
				Period struct {
					Start string `json:"start"`
					End   string `json:"end"`
				} `json:"period"`
			} `json:"position"`
			Company struct {
				Name string `json:"name"`
			} `json:"company"`
		} `json:"timeline"`
	} `json:"professional_experience"`

	EducationBackground struct {
		DegreePrograms []struct {
			Degree struct {
				Title    string `json:"title"`
				Duration string `json:"duration"`
			} `json:"degree"`
			Institution struct {
				Name string `json:"name"`
			} `json:"institution"`
		} `json:"degree_programs"`
	} `json:"education_background"`
}

// Data is the loaded, flattened resume corpus source. Read-only after Load.
type Data struct {
	bio        string
	projects   []Project
	experience []ExperienceEntry
	education  []EducationEntry
}

// NewData builds the corpus source from already-flattened records. Load is
// the usual entry point; this one exists for callers that assemble the data
// themselves.
func NewData(bio string, projects []Project, experience []ExperienceEntry, education []EducationEntry) *Data {
	return &Data{
		bio:        bio,
		projects:   projects,
		experience: experience,
		education:  education,
	}
}

func (d *Data) Bio() string                    { return d.bio }
func (d *Data) Projects() []Project            { return d.projects }
func (d *Data) Experience() []ExperienceEntry  { return d.experience }
func (d *Data) Education() []EducationEntry    { return d.education }
