package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// UserProfile is the slice of an auth user the application cares about.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Session is the result of a successful password login.
type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    int         `json:"expiresIn"`
	User         UserProfile `json:"user"`
}

// SupabaseDirectory talks to the Supabase auth REST API with the service
// role key. It backs user lookups for activity enrichment and the login
// endpoint.
type SupabaseDirectory struct {
	baseURL    string
	serviceKey string
	client     *http.Client
	log        *logrus.Entry
}

func NewSupabaseDirectory(baseURL, serviceKey string) *SupabaseDirectory {
	return &SupabaseDirectory{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 15 * time.Second},
		log:        logrus.WithField("component", "supabase-auth"),
	}
}

type supabaseUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

func (u supabaseUser) profile() UserProfile {
	p := UserProfile{ID: u.ID, Email: u.Email}
	if v, ok := u.UserMetadata["username"].(string); ok {
		p.Username = v
	}
	if v, ok := u.UserMetadata["role"].(string); ok {
		p.Role = v
	}
	return p
}

func (d *SupabaseDirectory) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", d.serviceKey)
	req.Header.Set("Authorization", "Bearer "+d.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		d.log.WithFields(logrus.Fields{"status": resp.StatusCode, "path": path}).Warn("auth request failed")
		return fmt.Errorf("supabase auth: %s %s returned %d: %s", method, path, resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetUser fetches one auth user by its UUID.
func (d *SupabaseDirectory) GetUser(ctx context.Context, id string) (*UserProfile, error) {
	var user supabaseUser
	if err := d.do(ctx, http.MethodGet, "/auth/v1/admin/users/"+id, nil, &user); err != nil {
		return nil, err
	}
	p := user.profile()
	return &p, nil
}

// ListUsers fetches the full auth user list.
func (d *SupabaseDirectory) ListUsers(ctx context.Context) ([]UserProfile, error) {
	var page struct {
		Users []supabaseUser `json:"users"`
	}
	if err := d.do(ctx, http.MethodGet, "/auth/v1/admin/users", nil, &page); err != nil {
		return nil, err
	}
	profiles := make([]UserProfile, 0, len(page.Users))
	for _, u := range page.Users {
		profiles = append(profiles, u.profile())
	}
	return profiles, nil
}

// Login exchanges email and password for a session via the password grant.
func (d *SupabaseDirectory) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var grant struct {
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
		ExpiresIn    int          `json:"expires_in"`
		User         supabaseUser `json:"user"`
	}
	if err := d.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body, &grant); err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresIn:    grant.ExpiresIn,
		User:         grant.User.profile(),
	}, nil
}
