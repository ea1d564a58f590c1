package models

import "time"

// AdminModel is a dashboard administrator.
type AdminModel struct {
	Base
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"        gorm:"not null"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (AdminModel) TableName() string { return "admins" }

// LoginLogModel records each login attempt, successful or not.
type LoginLogModel struct {
	Base
	IP      string `json:"ip"      gorm:"index"`
	Method  string `json:"method"` // "password" | "magic"
	Hint    string `json:"hint"`   // username, or the rejected magic word
	Success bool   `json:"success"`
}

func (LoginLogModel) TableName() string { return "login_logs" }
