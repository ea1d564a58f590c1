package portfolio

import (
	"github.com/folio-space/core/internal/models"
)

// DiffStatus classifies a draft-side entity or section against the published
// version.
type DiffStatus string

const (
	// DiffPublished: identical to the published counterpart.
	DiffPublished DiffStatus = "published"
	// DiffModified: a published counterpart exists but at least one content
	// field differs.
	DiffModified DiffStatus = "modified"
	// DiffNew: no published counterpart exists.
	DiffNew DiffStatus = "new"
)

// ItemDiff is the classification of one draft child entity.
type ItemDiff struct {
	ID       string     `json:"id"`
	StableID string     `json:"stable_id"`
	Status   DiffStatus `json:"status"`
}

// Report is the full draft-vs-published comparison.
type Report struct {
	Profile               DiffStatus `json:"profile"`
	Theme                 DiffStatus `json:"theme"`
	Experiences           []ItemDiff `json:"experiences"`
	Education             []ItemDiff `json:"education"`
	Skills                []ItemDiff `json:"skills"`
	HasUnpublishedChanges bool       `json:"has_unpublished_changes"`
}

// BuildReport compares a draft aggregate against the published one. A nil
// draft means no working copy exists, so nothing is pending. A nil published
// with a live draft marks everything new.
func BuildReport(draft, published *Aggregate) *Report {
	if draft == nil {
		r := &Report{
			Profile:     DiffPublished,
			Theme:       DiffPublished,
			Experiences: []ItemDiff{},
			Education:   []ItemDiff{},
			Skills:      []ItemDiff{},
		}
		if published != nil {
			for _, e := range published.Experiences {
				r.Experiences = append(r.Experiences, ItemDiff{ID: e.ID, StableID: e.StableID, Status: DiffPublished})
			}
			for _, e := range published.Education {
				r.Education = append(r.Education, ItemDiff{ID: e.ID, StableID: e.StableID, Status: DiffPublished})
			}
			for _, sk := range published.Skills {
				r.Skills = append(r.Skills, ItemDiff{ID: sk.ID, StableID: sk.StableID, Status: DiffPublished})
			}
		}
		return r
	}

	r := &Report{
		Profile:     ProfileStatus(&draft.PortfolioModel, publishedModel(published)),
		Theme:       ThemeStatus(&draft.PortfolioModel, publishedModel(published)),
		Experiences: []ItemDiff{},
		Education:   []ItemDiff{},
		Skills:      []ItemDiff{},
	}

	var pubExp []models.ExperienceModel
	var pubEdu []models.EducationModel
	var pubSkills []models.SkillModel
	if published != nil {
		pubExp = published.Experiences
		pubEdu = published.Education
		pubSkills = published.Skills
	}

	for i := range draft.Experiences {
		e := &draft.Experiences[i]
		r.Experiences = append(r.Experiences, ItemDiff{ID: e.ID, StableID: e.StableID, Status: ClassifyExperience(e, pubExp)})
	}
	for i := range draft.Education {
		e := &draft.Education[i]
		r.Education = append(r.Education, ItemDiff{ID: e.ID, StableID: e.StableID, Status: ClassifyEducation(e, pubEdu)})
	}
	for i := range draft.Skills {
		sk := &draft.Skills[i]
		r.Skills = append(r.Skills, ItemDiff{ID: sk.ID, StableID: sk.StableID, Status: ClassifySkill(sk, pubSkills)})
	}

	r.HasUnpublishedChanges = HasUnpublishedChanges(draft, published)
	return r
}

func publishedModel(published *Aggregate) *models.PortfolioModel {
	if published == nil {
		return nil
	}
	return &published.PortfolioModel
}

// ProfileStatus compares the profile, hero and about fields.
func ProfileStatus(draft, published *models.PortfolioModel) DiffStatus {
	if published == nil {
		return DiffNew
	}
	if draft.ProfileName == published.ProfileName &&
		draft.ProfileTitle == published.ProfileTitle &&
		draft.ProfileDescription == published.ProfileDescription &&
		draft.ProfileEmail == published.ProfileEmail &&
		draft.ProfileLocation == published.ProfileLocation &&
		ptrEq(draft.ProfileImageURL, published.ProfileImageURL) &&
		draft.HeroTitle == published.HeroTitle &&
		draft.HeroSubtitle == published.HeroSubtitle &&
		draft.HeroStatus == published.HeroStatus &&
		ptrEq(draft.AboutText, published.AboutText) {
		return DiffPublished
	}
	return DiffModified
}

// ThemeStatus compares the theme color and font overrides.
func ThemeStatus(draft, published *models.PortfolioModel) DiffStatus {
	if published == nil {
		return DiffNew
	}
	if themeColorsEq(draft.ThemeColors, published.ThemeColors) &&
		themeFontsEq(draft.ThemeFonts, published.ThemeFonts) {
		return DiffPublished
	}
	return DiffModified
}

// ClassifyExperience matches a draft entry against the published set by
// stable id, then compares content fields.
func ClassifyExperience(draft *models.ExperienceModel, published []models.ExperienceModel) DiffStatus {
	for i := range published {
		p := &published[i]
		if p.StableID != draft.StableID {
			continue
		}
		if draft.Company == p.Company &&
			draft.Role == p.Role &&
			draft.Type == p.Type &&
			draft.Location == p.Location &&
			draft.StartDate == p.StartDate &&
			draft.EndDate == p.EndDate &&
			draft.Bullets.Equal(p.Bullets) &&
			ptrEq(draft.LogoURL, p.LogoURL) {
			return DiffPublished
		}
		return DiffModified
	}
	return DiffNew
}

// ClassifyEducation matches by stable id, then compares content fields.
func ClassifyEducation(draft *models.EducationModel, published []models.EducationModel) DiffStatus {
	for i := range published {
		p := &published[i]
		if p.StableID != draft.StableID {
			continue
		}
		if draft.School == p.School &&
			draft.Degree == p.Degree &&
			draft.Dates == p.Dates &&
			ptrEq(draft.Details, p.Details) &&
			coursesEq(draft.Courses, p.Courses) {
			return DiffPublished
		}
		return DiffModified
	}
	return DiffNew
}

// ClassifySkill matches by stable id, then compares the name.
func ClassifySkill(draft *models.SkillModel, published []models.SkillModel) DiffStatus {
	for i := range published {
		p := &published[i]
		if p.StableID != draft.StableID {
			continue
		}
		if draft.Name == p.Name {
			return DiffPublished
		}
		return DiffModified
	}
	return DiffNew
}

// HasUnpublishedChanges reports whether publishing the draft would change the
// live site. With no draft there is nothing pending; with a draft and no
// published version everything is pending. Removed and reordered children
// count as changes even though per-entity statuses cannot express them.
func HasUnpublishedChanges(draft, published *Aggregate) bool {
	if draft == nil {
		return false
	}
	if published == nil {
		return true
	}
	if ProfileStatus(&draft.PortfolioModel, &published.PortfolioModel) != DiffPublished {
		return true
	}
	if ThemeStatus(&draft.PortfolioModel, &published.PortfolioModel) != DiffPublished {
		return true
	}

	if len(draft.Experiences) != len(published.Experiences) ||
		len(draft.Education) != len(published.Education) ||
		len(draft.Skills) != len(published.Skills) {
		return true
	}
	for i := range draft.Experiences {
		p := &published.Experiences[i]
		if draft.Experiences[i].StableID != p.StableID ||
			ClassifyExperience(&draft.Experiences[i], published.Experiences) != DiffPublished {
			return true
		}
	}
	for i := range draft.Education {
		p := &published.Education[i]
		if draft.Education[i].StableID != p.StableID ||
			ClassifyEducation(&draft.Education[i], published.Education) != DiffPublished {
			return true
		}
	}
	for i := range draft.Skills {
		p := &published.Skills[i]
		if draft.Skills[i].StableID != p.StableID ||
			ClassifySkill(&draft.Skills[i], published.Skills) != DiffPublished {
			return true
		}
	}
	return false
}

func ptrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func themeColorsEq(a, b *models.ThemeColors) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ptrEq(a.Primary, b.Primary) &&
		ptrEq(a.Accent, b.Accent) &&
		ptrEq(a.Background, b.Background) &&
		ptrEq(a.Foreground, b.Foreground)
}

func themeFontsEq(a, b *models.ThemeFonts) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ptrEq(a.Serif, b.Serif) && ptrEq(a.Sans, b.Sans)
}

func coursesEq(a, b []models.CourseEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !ptrEq(a[i].URL, b[i].URL) {
			return false
		}
	}
	return true
}
