// Package fixtures provides sample resume documents shared by tests across packages.
package fixtures

import "github.com/jonathan/resume-wizard/internal/types"

// ValidDocument returns a working document that satisfies every wizard rule.
// Each call returns a fresh value that callers may mutate.
func ValidDocument() types.WorkingDocument {
	return types.WorkingDocument{
		PersonalInfo: &types.PersonalInfo{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "+44 20 7946 0000",
			BirthDate: "1990-12-10",
			Title:     "Software Engineer",
			City:      "London",
			Country:   "UK",
		},
		Experience: []types.ExperienceItem{
			{
				ID:               "exp-1",
				Title:            "Backend Engineer",
				Company:          "Analytical Engines Ltd",
				SeniorityLevel:   "senior",
				StartDate:        "2019-03-01",
				CurrentlyWorking: types.BoolPtr(true),
				Description:      "Built the difference engine API",
			},
			{
				ID:               "exp-2",
				Title:            "Mentor",
				Company:          "Code Club",
				SeniorityLevel:   "mid",
				StartDate:        "2016-01-01",
				EndDate:          "2018-06-01",
				CurrentlyWorking: types.BoolPtr(false),
				IsVolunteering:   true,
			},
		},
		Education: []types.EducationItem{
			{
				ID:           "edu-1",
				Institution:  "University of London",
				Degree:       "BSc",
				FieldOfStudy: "Mathematics",
				StartDate:    "2010-09-01",
				EndDate:      "2013-06-01",
			},
		},
		Skills: []types.SkillItem{
			{ID: "sk-1", Name: "Go", Level: "expert", YearsOfExperience: types.IntPtr(6)},
			{ID: "sk-2", Name: "Communication", IsSoftSkill: true},
		},
		Languages: []types.LanguageItem{
			{ID: "lang-1", Name: "English", Proficiency: "native"},
		},
		Certificates: []types.CertificateItem{
			{ID: "cert-1", Name: "CKA", Organization: "CNCF", IssueDate: "2021-04-01"},
		},
		Links: []types.LinkItem{
			{ID: "link-1", WebsiteName: "GitHub", URL: "https://github.com/ada"},
		},
		PersonalProjects: []types.ProjectItem{
			{ID: "proj-1", Title: "Bernoulli", Description: "Number crunching toolkit"},
		},
		SelectedTemplate: "classic",
		ResumeName:       "Resume",
	}
}

// PersistedResume returns a backend resume that exercises every mapped field.
func PersistedResume() *types.PersistedResume {
	return &types.PersistedResume{
		ID:         "res-100",
		Name:       "Backend roles",
		TemplateID: "modern",
		Data: types.ResumePayload{
			PersonalInfo: &types.PersistedPersonalInfo{
				FirstName:   "Ada",
				LastName:    "Lovelace",
				Email:       "ada@example.com",
				PhoneNumber: "+44 20 7946 0000",
				BirthDate:   "1990-12-10",
				Title:       "Software Engineer",
				Summary:     "Engineer who likes engines",
				City:        "London",
				Country:     "UK",
			},
			CareerExperiences: []types.PersistedExperience{
				{
					ID:               "11",
					JobTitle:         "Backend Engineer",
					CompanyName:      "Analytical Engines Ltd",
					SeniorityLevel:   "senior",
					Location:         "London",
					StartDate:        "2019-03",
					CurrentlyWorking: types.BoolPtr(true),
					Description:      "Built the difference engine API",
				},
			},
			VolunteeringExperiences: []types.PersistedExperience{
				{
					ID:               "12",
					JobTitle:         "Mentor",
					CompanyName:      "Code Club",
					SeniorityLevel:   "mid",
					StartDate:        "2016-01",
					EndDate:          "2018-06",
					CurrentlyWorking: types.BoolPtr(false),
				},
			},
			Educations: []types.PersistedEducation{
				{
					ID:           "21",
					Institution:  "University of London",
					Degree:       "BSc",
					FieldOfStudy: "Mathematics",
					StartDate:    "2010-09",
					EndDate:      "2013-06",
					Grade:        "First",
				},
			},
			TechnicalSkills: []types.PersistedSkill{
				{ID: "31", Name: "Go", Level: "expert", YearsOfExperience: types.IntPtr(6)},
			},
			SoftSkills: []types.PersistedSkill{
				{ID: "32", Name: "Communication"},
			},
			Languages: []types.PersistedLanguage{
				{ID: "41", Name: "English", ProficiencyCode: "native"},
			},
			Certifications: []types.PersistedCertification{
				{ID: "51", Name: "CKA", IssuingOrganization: "CNCF", IssueDate: "2021-04", CredentialURL: "https://cncf.io/c/1"},
			},
			Links: []types.PersistedLink{
				{ID: "61", WebsiteName: "GitHub", URL: "https://github.com/ada"},
			},
			PersonalProjects: []types.PersistedProject{
				{ID: "71", Title: "Bernoulli", Description: "Number crunching toolkit", ProjectURL: "https://example.com/b", StartDate: "2020-01"},
			},
		},
	}
}

// FullPatch returns a patch that replaces every section of a document with the
// sections of doc.
func FullPatch(doc types.WorkingDocument) types.DocumentPatch {
	return types.DocumentPatch{
		PersonalInfo:     doc.PersonalInfo,
		Experience:       &doc.Experience,
		Education:        &doc.Education,
		Skills:           &doc.Skills,
		Languages:        &doc.Languages,
		Certificates:     &doc.Certificates,
		Links:            &doc.Links,
		PersonalProjects: &doc.PersonalProjects,
		SelectedTemplate: &doc.SelectedTemplate,
		ResumeName:       &doc.ResumeName,
	}
}
