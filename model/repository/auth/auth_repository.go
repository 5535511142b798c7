package auth

import (
	"strings"
	"time"

	"gorm.io/gorm"

	entity "foodcourt.GO/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked, non-expired token by its token
// string.
func (r *AuthRepository) FindActiveToken(token string) (*entity.ApiToken, error) {
	var t entity.ApiToken
	err := r.db.Where("token = ? AND revoked = 0", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ExpiresAt != nil && t.ExpiresAt.Before(time.Now()) {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

// Scopes splits a token's scope list into individual scope names.
func Scopes(t *entity.ApiToken) []string {
	if t.Scopes == "" {
		return nil
	}
	parts := strings.Split(t.Scopes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Revoke marks a token revoked by its token string.
func (r *AuthRepository) Revoke(token string) error {
	return r.db.Model(&entity.ApiToken{}).Where("token = ?", token).Update("revoked", 1).Error
}
