package rendering

import "github.com/jonathan/resuexpress/internal/types"

// View is the data structure passed to the HTML templates
type View struct {
	Name     string
	JobTitle string
	Email    string
	Phone    string
	LinkedIn string
	Summary  string
	Skills   string

	Experience []ExperienceView
	Education  []EducationView
	Projects   []ProjectView
}

// ExperienceView is one work experience record
type ExperienceView struct {
	JobTitle    string
	Company     string
	City        string
	StartDate   string
	EndDate     string
	Description string
}

// EducationView is one education record
type EducationView struct {
	Degree      string
	Institution string
	City        string
	Year        string
}

// ProjectView is one project record
type ProjectView struct {
	Name        string
	Description string
}

// PrimaryCity is the city of the first experience record.
func (v View) PrimaryCity() string {
	if len(v.Experience) == 0 {
		return ""
	}
	return v.Experience[0].City
}

// newView maps a document onto the template view. Records keep their order.
func newView(doc *types.ResumeDocument) *View {
	v := &View{
		Name:       doc.Name,
		JobTitle:   doc.Scalar("jobTitle"),
		Email:      doc.Email,
		Phone:      doc.Phone,
		LinkedIn:   doc.LinkedIn,
		Summary:    doc.Summary,
		Skills:     doc.Skills,
		Experience: make([]ExperienceView, 0, len(doc.Experience)),
		Education:  make([]EducationView, 0, len(doc.Education)),
		Projects:   make([]ProjectView, 0, len(doc.Projects)),
	}

	for _, r := range doc.Experience {
		v.Experience = append(v.Experience, ExperienceView{
			JobTitle:    r["jobTitle"],
			Company:     r["company"],
			City:        r["city"],
			StartDate:   r["startDate"],
			EndDate:     r["endDate"],
			Description: r["description"],
		})
	}
	for _, r := range doc.Education {
		v.Education = append(v.Education, EducationView{
			Degree:      r["degree"],
			Institution: r["institution"],
			City:        r["city"],
			Year:        r["year"],
		})
	}
	for _, r := range doc.Projects {
		v.Projects = append(v.Projects, ProjectView{
			Name:        r["name"],
			Description: r["description"],
		})
	}
	return v
}
