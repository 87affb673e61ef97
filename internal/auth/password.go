package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/galsan/jungang-heights-api/internal/config"
)

// VerifyAdminPassword checks a login attempt against the configured
// credential. A bcrypt hash takes precedence when set; otherwise the
// plaintext password is compared in constant time.
func VerifyAdminPassword(cfg config.AdminConfig, candidate string) bool {
	if cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(candidate)) == nil
	}
	if cfg.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cfg.Password), []byte(candidate)) == 1
}
