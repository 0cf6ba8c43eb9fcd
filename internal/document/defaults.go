package document

import "github.com/jonathan/resuexpress/internal/types"

// Default returns a fresh document with the built-in defaults: step 1, the default
// template, empty scalars and one empty record per repeatable section.
func Default() *types.ResumeDocument {
	return &types.ResumeDocument{
		CurrentStep:      1,
		SelectedTemplate: types.DefaultTemplateKey,
		Experience:       []types.Record{{}},
		Education:        []types.Record{{}},
		Projects:         []types.Record{{}},
	}
}

// Example returns the built-in example document shown while the live document has
// no name yet.
func Example() *types.ResumeDocument {
	return &types.ResumeDocument{
		CurrentStep:      1,
		SelectedTemplate: types.DefaultTemplateKey,
		Name:             "Jane Doe",
		Email:            "jane.doe@example.com",
		Phone:            "(555) 123-4567",
		LinkedIn:         "linkedin.com/in/janedoe",
		Summary:          "Highly analytical and results-oriented professional with 8+ years of experience in product strategy and lifecycle management. Proven ability to drive complex projects from concept to launch, exceeding KPIs by 20%.",
		Skills:           "Product Roadmapping, Tailwind CSS, Project Management, SQL, Data Analysis, Stakeholder Management, Vercel Deployment",
		Experience: []types.Record{
			{
				"jobTitle":    "Product Manager",
				"company":     "Innovate Solutions",
				"city":        "San Francisco, CA",
				"startDate":   "2019-03",
				"endDate":     "Present",
				"description": "Led cross-functional teams (5 engineers, 2 designers) to launch two major B2B SaaS features, resulting in a 15% increase in customer retention. Defined product roadmap and managed backlog.",
			},
			{
				"jobTitle":    "Associate PM",
				"company":     "Global Tech Corp",
				"city":        "New York, NY",
				"startDate":   "2017-06",
				"endDate":     "2019-02",
				"description": "Conducted market research and competitive analysis, contributing to a successful pivot in mobile strategy. Managed A/B testing efforts for marketing campaigns.",
			},
		},
		Education: []types.Record{
			{"degree": "M.S. in Business Administration", "institution": "State University", "city": "Cityville, ST", "year": "2017"},
			{"degree": "B.A. in Economics", "institution": "Local College", "city": "Township, ST", "year": "2015"},
		},
		Projects: []types.Record{
			{"name": "Resuexpress Web App", "description": "Developed a 5-step, multi-template resume builder with live preview and local storage persistence."},
			{"name": "E-commerce Recommendation Engine", "description": "Built and deployed a Python/TensorFlow model that improved click-through rates by 12%."},
		},
		Extra: map[string]string{"jobTitle": "Senior Product Manager"},
	}
}
