package entity

import "time"

// ApiToken is a long-lived access token for machine clients (kiosks, the
// import pipeline). Scopes is a comma-separated list checked by handlers
// that need more than bare authentication.
type ApiToken struct {
	EntityID  uint       `gorm:"column:entity_id;primaryKey;autoIncrement"`
	ClientID  string     `gorm:"column:client_id;type:varchar(64);not null;index"`
	Token     string     `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Scopes    string     `gorm:"column:scopes;type:varchar(255)"`
	Revoked   uint16     `gorm:"column:revoked;not null;default:0"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (ApiToken) TableName() string {
	return "api_token"
}
