package model

import "time"

// ClientPreference is one persisted key/value pair of client-side state
// (theme, credential).
type ClientPreference struct {
	Key       string    `gorm:"column:client_preference_key;type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"column:client_preference_value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:client_preference_updated_at;autoUpdateTime" json:"updated_at"`
}

func (ClientPreference) TableName() string {
	return "client_preferences"
}

type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}
