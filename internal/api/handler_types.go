package api

import (
	"html/template"
	"time"

	"github.com/terraincognita07/cefalog/internal/db"
	"github.com/terraincognita07/cefalog/internal/i18n"
	"github.com/terraincognita07/cefalog/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db             *gorm.DB
	secretKey      []byte
	location       *time.Location
	cookieSecure   bool
	i18n           *i18n.Manager
	templates      map[string]*template.Template
	loginLimiter   *attemptLimiter
	repositories   *db.Repositories
	authService    *services.AuthService
	episodeService *services.EpisodeService
	exportService  *services.ExportService
}

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type episodePayload struct {
	ID                 string   `json:"id" form:"id"`
	StartedAt          string   `json:"started_at" form:"started_at"`
	EndedAt            string   `json:"ended_at" form:"ended_at"`
	Intensity          int      `json:"intensity" form:"intensity"`
	Quality            string   `json:"quality" form:"quality"`
	Zones              []string `json:"zones"`
	HasAura            bool     `json:"has_aura"`
	LightSensitive     bool     `json:"light_sensitive"`
	SoundSensitive     bool     `json:"sound_sensitive"`
	SmellSensitive     bool     `json:"smell_sensitive"`
	HasNausea          bool     `json:"has_nausea"`
	WorsenedByMovement bool     `json:"worsened_by_movement"`
	Triggers           []string `json:"triggers"`
	Medication         string   `json:"medication" form:"medication"`
	Food               string   `json:"food" form:"food"`
	Notes              string   `json:"notes" form:"notes"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type deleteAccountInput struct {
	Password string `json:"password" form:"password"`
}

type FlashPayload struct {
	AuthError       string `json:"auth_error,omitempty"`
	SettingsError   string `json:"settings_error,omitempty"`
	SettingsSuccess string `json:"settings_success,omitempty"`
	LoginEmail      string `json:"login_email,omitempty"`
	RegisterEmail   string `json:"register_email,omitempty"`
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)
