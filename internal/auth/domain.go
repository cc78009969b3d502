package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// Profile is the signed-in user's profile as issued by the HR API.
type Profile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Name        string   `json:"nama"`
	Role        string   `json:"role"`
	Permissions []string `json:"permission"`
}

// SSOData is the single sign-on context chosen after login.
type SSOData struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	App      string `json:"aplikasi"`
}

// Session is the authenticated context handed explicitly to list controllers
// and API callers. It is decoded once per request from the auth cookies.
type Session struct {
	Token   string
	SSO     *SSOData
	Profile *Profile
}

// Authenticated reports whether both the token and SSO context are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.SSO != nil
}

// Complete reports whether the session carries token, SSO context and profile.
func (s Session) Complete() bool {
	return s.Authenticated() && s.Profile != nil
}

// Can reports whether the profile grants perm.
func (s Session) Can(perm string) bool {
	if s.Profile == nil {
		return false
	}
	return slices.ContainsFunc(s.Profile.Permissions, func(p string) bool {
		return strings.EqualFold(strings.TrimSpace(p), perm)
	})
}

// Actor names the user for audit fields such as *ModifBy.
func (s Session) Actor() string {
	if s.SSO != nil && s.SSO.Username != "" {
		return s.SSO.Username
	}
	if s.Profile != nil && s.Profile.Username != "" {
		return s.Profile.Username
	}
	return "System"
}

// Fingerprint identifies the session without exposing the token.
func (s Session) Fingerprint() string {
	sum := sha256.Sum256([]byte(s.Token))
	return hex.EncodeToString(sum[:8])
}
