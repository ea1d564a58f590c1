package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/folio-space/core/internal/models"
)

func expEntry(stableID, company, role string, bullets ...string) models.ExperienceModel {
	return models.ExperienceModel{
		StableID: stableID,
		Company:  company,
		Role:     role,
		Bullets:  models.StringArray(bullets),
	}
}

func TestClassifyExperience(t *testing.T) {
	published := []models.ExperienceModel{
		expEntry("s1", "Acme", "Engineer", "built the thing"),
	}

	t.Run("identical entry is published", func(t *testing.T) {
		draft := expEntry("s1", "Acme", "Engineer", "built the thing")
		assert.Equal(t, DiffPublished, ClassifyExperience(&draft, published))
	})

	t.Run("changed field is modified", func(t *testing.T) {
		draft := expEntry("s1", "Acme", "Senior Engineer", "built the thing")
		assert.Equal(t, DiffModified, ClassifyExperience(&draft, published))
	})

	t.Run("changed bullets are modified", func(t *testing.T) {
		draft := expEntry("s1", "Acme", "Engineer", "built the thing", "shipped it")
		assert.Equal(t, DiffModified, ClassifyExperience(&draft, published))
	})

	t.Run("unknown stable id is new", func(t *testing.T) {
		draft := expEntry("s2", "Acme", "Engineer", "built the thing")
		assert.Equal(t, DiffNew, ClassifyExperience(&draft, published))
	})

	t.Run("empty published set is new", func(t *testing.T) {
		draft := expEntry("s1", "Acme", "Engineer")
		assert.Equal(t, DiffNew, ClassifyExperience(&draft, nil))
	})
}

func TestClassifyEducation(t *testing.T) {
	published := []models.EducationModel{{
		StableID: "s1",
		School:   "MIT",
		Degree:   "BSc",
		Courses:  []models.CourseEntry{{Name: "Algorithms"}},
	}}

	t.Run("identical entry is published", func(t *testing.T) {
		draft := models.EducationModel{StableID: "s1", School: "MIT", Degree: "BSc", Courses: []models.CourseEntry{{Name: "Algorithms"}}}
		assert.Equal(t, DiffPublished, ClassifyEducation(&draft, published))
	})

	t.Run("changed course url is modified", func(t *testing.T) {
		draft := models.EducationModel{StableID: "s1", School: "MIT", Degree: "BSc", Courses: []models.CourseEntry{{Name: "Algorithms", URL: strp("https://example.com")}}}
		assert.Equal(t, DiffModified, ClassifyEducation(&draft, published))
	})

	t.Run("unknown stable id is new", func(t *testing.T) {
		draft := models.EducationModel{StableID: "s9", School: "MIT", Degree: "BSc"}
		assert.Equal(t, DiffNew, ClassifyEducation(&draft, published))
	})
}

func TestClassifySkill(t *testing.T) {
	published := []models.SkillModel{{StableID: "s1", Name: "Go"}}

	draft := models.SkillModel{StableID: "s1", Name: "Go"}
	assert.Equal(t, DiffPublished, ClassifySkill(&draft, published))

	draft.Name = "Golang"
	assert.Equal(t, DiffModified, ClassifySkill(&draft, published))

	draft.StableID = "s2"
	assert.Equal(t, DiffNew, ClassifySkill(&draft, published))
}

func TestProfileAndThemeStatus(t *testing.T) {
	base := models.PortfolioModel{
		ProfileName:  "Ada",
		ProfileTitle: "Engineer",
		HeroTitle:    "Hello",
		AboutText:    strp("about"),
		ThemeColors:  &models.ThemeColors{Primary: strp("#111")},
		ThemeFonts:   &models.ThemeFonts{Serif: strp("Georgia")},
	}

	t.Run("identical is published", func(t *testing.T) {
		draft := base
		assert.Equal(t, DiffPublished, ProfileStatus(&draft, &base))
		assert.Equal(t, DiffPublished, ThemeStatus(&draft, &base))
	})

	t.Run("nil published is new", func(t *testing.T) {
		draft := base
		assert.Equal(t, DiffNew, ProfileStatus(&draft, nil))
		assert.Equal(t, DiffNew, ThemeStatus(&draft, nil))
	})

	t.Run("profile change does not touch theme", func(t *testing.T) {
		draft := base
		draft.ProfileName = "Ada King"
		assert.Equal(t, DiffModified, ProfileStatus(&draft, &base))
		assert.Equal(t, DiffPublished, ThemeStatus(&draft, &base))
	})

	t.Run("theme change does not touch profile", func(t *testing.T) {
		draft := base
		draft.ThemeColors = &models.ThemeColors{Primary: strp("#222")}
		assert.Equal(t, DiffPublished, ProfileStatus(&draft, &base))
		assert.Equal(t, DiffModified, ThemeStatus(&draft, &base))
	})

	t.Run("cleared about text is modified", func(t *testing.T) {
		draft := base
		draft.AboutText = nil
		assert.Equal(t, DiffModified, ProfileStatus(&draft, &base))
	})
}

func TestHasUnpublishedChanges(t *testing.T) {
	pubAgg := &Aggregate{
		PortfolioModel: models.PortfolioModel{ProfileName: "Ada", HeroTitle: "Hello"},
		Experiences:    []models.ExperienceModel{expEntry("e1", "Acme", "Engineer")},
		Skills:         []models.SkillModel{{StableID: "k1", Name: "Go"}},
	}
	cloneAgg := func() *Aggregate {
		c := &Aggregate{
			PortfolioModel: pubAgg.PortfolioModel,
			Experiences:    append([]models.ExperienceModel{}, pubAgg.Experiences...),
			Skills:         append([]models.SkillModel{}, pubAgg.Skills...),
		}
		return c
	}

	t.Run("no draft means nothing pending", func(t *testing.T) {
		assert.False(t, HasUnpublishedChanges(nil, pubAgg))
	})

	t.Run("no published means everything pending", func(t *testing.T) {
		assert.True(t, HasUnpublishedChanges(cloneAgg(), nil))
	})

	t.Run("identical draft has nothing pending", func(t *testing.T) {
		assert.False(t, HasUnpublishedChanges(cloneAgg(), pubAgg))
	})

	t.Run("scalar edit is pending", func(t *testing.T) {
		draft := cloneAgg()
		draft.HeroTitle = "Hi"
		assert.True(t, HasUnpublishedChanges(draft, pubAgg))
	})

	t.Run("added child is pending", func(t *testing.T) {
		draft := cloneAgg()
		draft.Skills = append(draft.Skills, models.SkillModel{StableID: "k2", Name: "SQL"})
		assert.True(t, HasUnpublishedChanges(draft, pubAgg))
	})

	t.Run("removed child is pending", func(t *testing.T) {
		draft := cloneAgg()
		draft.Experiences = nil
		assert.True(t, HasUnpublishedChanges(draft, pubAgg))
	})

	t.Run("reordered children are pending", func(t *testing.T) {
		pub := &Aggregate{
			PortfolioModel: pubAgg.PortfolioModel,
			Skills: []models.SkillModel{
				{StableID: "k1", Name: "Go"},
				{StableID: "k2", Name: "SQL"},
			},
		}
		draft := &Aggregate{
			PortfolioModel: pub.PortfolioModel,
			Skills: []models.SkillModel{
				{StableID: "k2", Name: "SQL"},
				{StableID: "k1", Name: "Go"},
			},
		}
		assert.True(t, HasUnpublishedChanges(draft, pub))
	})
}

func TestBuildReport(t *testing.T) {
	pub := &Aggregate{
		PortfolioModel: models.PortfolioModel{ProfileName: "Ada"},
		Experiences:    []models.ExperienceModel{expEntry("e1", "Acme", "Engineer")},
	}
	draft := &Aggregate{
		PortfolioModel: models.PortfolioModel{ProfileName: "Ada"},
		Experiences: []models.ExperienceModel{
			expEntry("e1", "Acme", "Senior Engineer"),
			expEntry("e2", "Initech", "Consultant"),
		},
	}

	report := BuildReport(draft, pub)
	assert.Equal(t, DiffPublished, report.Profile)
	assert.True(t, report.HasUnpublishedChanges)
	assert.Len(t, report.Experiences, 2)
	assert.Equal(t, DiffModified, report.Experiences[0].Status)
	assert.Equal(t, DiffNew, report.Experiences[1].Status)

	t.Run("nil draft yields a quiet report", func(t *testing.T) {
		report := BuildReport(nil, pub)
		assert.False(t, report.HasUnpublishedChanges)
		assert.Equal(t, DiffPublished, report.Profile)
		assert.Len(t, report.Experiences, 1)
		assert.Equal(t, DiffPublished, report.Experiences[0].Status)
	})
}
