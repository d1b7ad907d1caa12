package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const telecmiBaseURL = "https://rest.telecmi.com/v2"

// TeleCMIClient bridges outbound click-to-call and recording retrieval to
// the TeleCMI REST API.
type TeleCMIClient struct {
	appID  string
	secret string
	client *http.Client
	log    *logrus.Entry
}

func NewTeleCMIClient(appID, secret string) *TeleCMIClient {
	return &TeleCMIClient{
		appID:  appID,
		secret: secret,
		client: &http.Client{Timeout: 20 * time.Second},
		log:    logrus.WithField("component", "telecmi"),
	}
}

// Connect asks the provider to dial the agent first and bridge to the
// destination number once the agent answers.
func (t *TeleCMIClient) Connect(ctx context.Context, agentID, to string) error {
	payload, err := json.Marshal(map[string]string{
		"appid":  t.appID,
		"secret": t.secret,
		"from":   agentID,
		"to":     to,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, telecmiBaseURL+"/click2call", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		t.log.WithField("status", resp.StatusCode).Warn("click2call failed")
		return fmt.Errorf("telecmi click2call returned %d: %s", resp.StatusCode, raw)
	}
	return nil
}

// DownloadRecording streams the recording file for a completed call. The
// caller owns the returned bytes and content type.
func (t *TeleCMIClient) DownloadRecording(ctx context.Context, filename string) ([]byte, string, error) {
	q := url.Values{}
	q.Set("appid", t.appID)
	q.Set("secret", t.secret)
	q.Set("file", filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, telecmiBaseURL+"/play?"+q.Encode(), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("telecmi recording %s returned %d", filename, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return content, contentType, nil
}
