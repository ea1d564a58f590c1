package portfolio

import (
	"github.com/folio-space/core/internal/models"
)

// Aggregate is a fully hydrated portfolio version: the scalar row plus its
// three ordered child collections.
type Aggregate struct {
	models.PortfolioModel
	Experiences []models.ExperienceModel `json:"experiences"`
	Education   []models.EducationModel  `json:"education"`
	Skills      []models.SkillModel      `json:"skills"`
}

// SaveDraftDTO is the partial-update payload for the draft's scalar fields.
// Required columns use plain pointers (nil = not supplied); nullable columns
// use models.Optional so they can be cleared explicitly.
type SaveDraftDTO struct {
	ProfileName        *string                             `json:"profile_name"`
	ProfileTitle       *string                             `json:"profile_title"`
	ProfileDescription *string                             `json:"profile_description"`
	ProfileEmail       *string                             `json:"profile_email"`
	ProfileLocation    *string                             `json:"profile_location"`
	ProfileImageURL    models.Optional[string]             `json:"profile_image_url"`
	HeroTitle          *string                             `json:"hero_title"`
	HeroSubtitle       *string                             `json:"hero_subtitle"`
	HeroStatus         *string                             `json:"hero_status"`
	AboutText          models.Optional[string]             `json:"about_text"`
	ThemeColors        models.Optional[models.ThemeColors] `json:"theme_colors"`
	ThemeFonts         models.Optional[models.ThemeFonts]  `json:"theme_fonts"`
}

// updates returns the supplied fields as a column→value map for a merge
// update on an existing draft.
func (d *SaveDraftDTO) updates() map[string]interface{} {
	out := map[string]interface{}{}
	if d.ProfileName != nil {
		out["profile_name"] = *d.ProfileName
	}
	if d.ProfileTitle != nil {
		out["profile_title"] = *d.ProfileTitle
	}
	if d.ProfileDescription != nil {
		out["profile_description"] = *d.ProfileDescription
	}
	if d.ProfileEmail != nil {
		out["profile_email"] = *d.ProfileEmail
	}
	if d.ProfileLocation != nil {
		out["profile_location"] = *d.ProfileLocation
	}
	if d.ProfileImageURL.Set {
		out["profile_image_url"] = d.ProfileImageURL.Value
	}
	if d.HeroTitle != nil {
		out["hero_title"] = *d.HeroTitle
	}
	if d.HeroSubtitle != nil {
		out["hero_subtitle"] = *d.HeroSubtitle
	}
	if d.HeroStatus != nil {
		out["hero_status"] = *d.HeroStatus
	}
	if d.AboutText.Set {
		out["about_text"] = d.AboutText.Value
	}
	if d.ThemeColors.Set {
		out["theme_colors"] = models.JSONColumn(d.ThemeColors.Value)
	}
	if d.ThemeFonts.Set {
		out["theme_fonts"] = models.JSONColumn(d.ThemeFonts.Value)
	}
	return out
}

// overlay applies the supplied fields onto a freshly cloned draft row, so a
// clone-then-immediate-edit is indistinguishable from a clone followed by a
// separate edit.
func (d *SaveDraftDTO) overlay(p *models.PortfolioModel) {
	if d.ProfileName != nil {
		p.ProfileName = *d.ProfileName
	}
	if d.ProfileTitle != nil {
		p.ProfileTitle = *d.ProfileTitle
	}
	if d.ProfileDescription != nil {
		p.ProfileDescription = *d.ProfileDescription
	}
	if d.ProfileEmail != nil {
		p.ProfileEmail = *d.ProfileEmail
	}
	if d.ProfileLocation != nil {
		p.ProfileLocation = *d.ProfileLocation
	}
	if d.ProfileImageURL.Set {
		p.ProfileImageURL = d.ProfileImageURL.Value
	}
	if d.HeroTitle != nil {
		p.HeroTitle = *d.HeroTitle
	}
	if d.HeroSubtitle != nil {
		p.HeroSubtitle = *d.HeroSubtitle
	}
	if d.HeroStatus != nil {
		p.HeroStatus = *d.HeroStatus
	}
	if d.AboutText.Set {
		p.AboutText = d.AboutText.Value
	}
	if d.ThemeColors.Set {
		p.ThemeColors = d.ThemeColors.Value
	}
	if d.ThemeFonts.Set {
		p.ThemeFonts = d.ThemeFonts.Value
	}
}
