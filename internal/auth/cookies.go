package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Cookie names shared with the rest of the HR suite.
const (
	CookieJWT      = "jwtToken"
	CookieSSO      = "ssoData"
	CookieUserData = "userData"
)

// ErrCookieSignature is returned when a signed auth cookie was altered or
// belongs to another token.
var ErrCookieSignature = errors.New("auth cookie signature mismatch")

// Presence records which auth cookies a request carries.
type Presence struct {
	JWT  bool
	SSO  bool
	User bool
}

// ReadPresence checks the three auth cookies without decoding them.
func ReadPresence(r *http.Request) Presence {
	return Presence{
		JWT:  hasCookie(r, CookieJWT),
		SSO:  hasCookie(r, CookieSSO),
		User: hasCookie(r, CookieUserData),
	}
}

// Cookies reads and writes the auth cookies. The SSO and profile cookies carry
// an HMAC over their payload and the bearer token, so a client cannot edit its
// own permissions or pair its token with another user's profile.
type Cookies struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookies returns a Cookies signing with secret. A non-positive ttl
// defaults to twelve hours.
func NewCookies(secret string, ttl time.Duration, secure bool) *Cookies {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Cookies{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Read decodes the auth cookies. Missing cookies leave the matching field
// empty; malformed or unsigned payloads are reported.
func (c *Cookies) Read(r *http.Request) (Session, error) {
	var sess Session
	if ck, err := r.Cookie(CookieJWT); err == nil {
		sess.Token = ck.Value
	}
	if ck, err := r.Cookie(CookieSSO); err == nil {
		var sso SSOData
		if err := c.decode(CookieSSO, sess.Token, ck.Value, &sso); err != nil {
			return sess, errors.Join(errors.New("decode sso cookie"), err)
		}
		sess.SSO = &sso
	}
	if ck, err := r.Cookie(CookieUserData); err == nil {
		var profile Profile
		if err := c.decode(CookieUserData, sess.Token, ck.Value, &profile); err != nil {
			return sess, errors.Join(errors.New("decode user cookie"), err)
		}
		sess.Profile = &profile
	}
	return sess, nil
}

// Write sets the auth cookies for sess.
func (c *Cookies) Write(w http.ResponseWriter, sess Session) error {
	expires := time.Now().Add(c.ttl)
	http.SetCookie(w, c.cookie(CookieJWT, sess.Token, expires))
	if sess.SSO != nil {
		value, err := c.encode(CookieSSO, sess.Token, sess.SSO)
		if err != nil {
			return err
		}
		http.SetCookie(w, c.cookie(CookieSSO, value, expires))
	}
	if sess.Profile != nil {
		value, err := c.encode(CookieUserData, sess.Token, sess.Profile)
		if err != nil {
			return err
		}
		http.SetCookie(w, c.cookie(CookieUserData, value, expires))
	}
	return nil
}

// Clear expires all auth cookies.
func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{CookieJWT, CookieSSO, CookieUserData} {
		ck := c.cookie(name, "", time.Time{})
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}

func (c *Cookies) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (c *Cookies) encode(name, token string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(data)
	return payload + "." + c.mac(name, token, payload), nil
}

func (c *Cookies) decode(name, token, value string, v any) error {
	payload, sig, ok := strings.Cut(value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(c.mac(name, token, payload))) {
		return ErrCookieSignature
	}
	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (c *Cookies) mac(name, token, payload string) string {
	m := hmac.New(sha256.New, c.secret)
	_, _ = m.Write([]byte(name + "\x00" + token + "\x00" + payload))
	return base64.RawURLEncoding.EncodeToString(m.Sum(nil))
}

func hasCookie(r *http.Request, name string) bool {
	ck, err := r.Cookie(name)
	return err == nil && ck.Value != ""
}
