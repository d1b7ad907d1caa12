package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ZoomMeeting is the subset of a created Zoom meeting the application keeps.
type ZoomMeeting struct {
	ID       int64  `json:"id"`
	JoinURL  string `json:"join_url"`
	StartURL string `json:"start_url"`
	HostID   string `json:"host_id"`
}

// ZoomClient schedules meetings through the Zoom server-to-server OAuth app.
// Access tokens are cached until shortly before expiry.
type ZoomClient struct {
	accountID    string
	clientID     string
	clientSecret string
	client       *http.Client
	log          *logrus.Entry

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewZoomClient(accountID, clientID, clientSecret string) *ZoomClient {
	return &ZoomClient{
		accountID:    accountID,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 15 * time.Second},
		log:          logrus.WithField("component", "zoom"),
	}
}

// token returns a cached access token, fetching a fresh one with the
// account_credentials grant when the cache is stale.
func (z *ZoomClient) token(ctx context.Context) (string, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.accessToken != "" && time.Now().Before(z.tokenExpiry) {
		return z.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", z.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://zoom.us/oauth/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(z.clientID, z.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := z.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("zoom token request returned %d: %s", resp.StatusCode, raw)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return "", err
	}

	z.accessToken = grant.AccessToken
	z.tokenExpiry = time.Now().Add(time.Duration(grant.ExpiresIn-60) * time.Second)
	return z.accessToken, nil
}

// CreateMeeting schedules a meeting on the account owner's calendar. Duration
// is in minutes and is derived by the caller from the start and end times.
func (z *ZoomClient) CreateMeeting(ctx context.Context, topic string, start time.Time, durationMinutes int) (*ZoomMeeting, error) {
	token, err := z.token(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]interface{}{
		"topic":      topic,
		"type":       2,
		"start_time": start.UTC().Format(time.RFC3339),
		"duration":   durationMinutes,
		"settings": map[string]interface{}{
			"join_before_host": true,
			"waiting_room":     false,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.zoom.us/v2/users/me/meetings", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		z.log.WithField("status", resp.StatusCode).Warn("meeting create failed")
		return nil, fmt.Errorf("zoom meeting create returned %d: %s", resp.StatusCode, raw)
	}

	var meeting ZoomMeeting
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, err
	}
	return &meeting, nil
}
