package models

import (
	"encoding/json"
	"reflect"
)

// ThemeColors holds the optional theme color overrides. Each field is
// independently settable; nil means "use the default".
type ThemeColors struct {
	Primary    *string `json:"primary,omitempty"`
	Accent     *string `json:"accent,omitempty"`
	Background *string `json:"background,omitempty"`
	Foreground *string `json:"foreground,omitempty"`
}

// ThemeFonts holds the optional font family overrides.
type ThemeFonts struct {
	Serif *string `json:"serif,omitempty"`
	Sans  *string `json:"sans,omitempty"`
}

// PortfolioModel is one version of the portfolio content. At most one row has
// IsDraft=false (the live site) and at most one has IsDraft=true (the working
// copy); the draft row is created lazily on first edit and removed on publish.
type PortfolioModel struct {
	Base
	IsDraft bool `json:"is_draft" gorm:"index;not null"`

	ProfileName        string  `json:"profile_name"        gorm:"not null"`
	ProfileTitle       string  `json:"profile_title"       gorm:"not null"`
	ProfileDescription string  `json:"profile_description" gorm:"type:text"`
	ProfileEmail       string  `json:"profile_email"`
	ProfileLocation    string  `json:"profile_location"`
	ProfileImageURL    *string `json:"profile_image_url"`

	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`
	HeroStatus   string `json:"hero_status"`

	AboutText *string `json:"about_text" gorm:"type:text"`

	ThemeColors *ThemeColors `json:"theme_colors" gorm:"type:longtext;serializer:json"`
	ThemeFonts  *ThemeFonts  `json:"theme_fonts"  gorm:"type:longtext;serializer:json"`
}

func (PortfolioModel) TableName() string { return "portfolio_contents" }

// ContentFields returns every content field as a column→value map, used when
// publish overwrites the live row in place. Identity, IsDraft and timestamps
// are deliberately absent.
func (p *PortfolioModel) ContentFields() map[string]interface{} {
	return map[string]interface{}{
		"profile_name":        p.ProfileName,
		"profile_title":       p.ProfileTitle,
		"profile_description": p.ProfileDescription,
		"profile_email":       p.ProfileEmail,
		"profile_location":    p.ProfileLocation,
		"profile_image_url":   p.ProfileImageURL,
		"hero_title":          p.HeroTitle,
		"hero_subtitle":       p.HeroSubtitle,
		"hero_status":         p.HeroStatus,
		"about_text":          p.AboutText,
		"theme_colors":        JSONColumn(p.ThemeColors),
		"theme_fonts":         JSONColumn(p.ThemeFonts),
	}
}

// JSONColumn prepares a value for a raw column update on a JSON-serialized
// field. Map-based Updates bypass gorm's serializer, so the value has to be
// marshalled here (or NULL) before it reaches the driver.
func JSONColumn(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Slice) && rv.IsNil() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(b)
}

// CloneContent returns a new unsaved row carrying the same content fields but
// no identity and no timestamps.
func (p *PortfolioModel) CloneContent() PortfolioModel {
	return PortfolioModel{
		ProfileName:        p.ProfileName,
		ProfileTitle:       p.ProfileTitle,
		ProfileDescription: p.ProfileDescription,
		ProfileEmail:       p.ProfileEmail,
		ProfileLocation:    p.ProfileLocation,
		ProfileImageURL:    copyStringPtr(p.ProfileImageURL),
		HeroTitle:          p.HeroTitle,
		HeroSubtitle:       p.HeroSubtitle,
		HeroStatus:         p.HeroStatus,
		AboutText:          copyStringPtr(p.AboutText),
		ThemeColors:        p.ThemeColors.clone(),
		ThemeFonts:         p.ThemeFonts.clone(),
	}
}

func (t *ThemeColors) clone() *ThemeColors {
	if t == nil {
		return nil
	}
	return &ThemeColors{
		Primary:    copyStringPtr(t.Primary),
		Accent:     copyStringPtr(t.Accent),
		Background: copyStringPtr(t.Background),
		Foreground: copyStringPtr(t.Foreground),
	}
}

func (t *ThemeFonts) clone() *ThemeFonts {
	if t == nil {
		return nil
	}
	return &ThemeFonts{
		Serif: copyStringPtr(t.Serif),
		Sans:  copyStringPtr(t.Sans),
	}
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
