package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"skillcapital/utils"
)

// Capability interfaces for the external collaborators. Controllers depend on
// these rather than the concrete clients so handlers can be tested against
// fakes.

// ProfileDirectory looks up users in the hosted auth provider.
type ProfileDirectory interface {
	GetUser(ctx context.Context, id string) (*utils.UserProfile, error)
	ListUsers(ctx context.Context) ([]utils.UserProfile, error)
	Login(ctx context.Context, email, password string) (*utils.Session, error)
}

// FileStore uploads files to object storage and resolves public URLs.
type FileStore interface {
	Upload(ctx context.Context, path string, content []byte, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// Mailer delivers transactional HTML email.
type Mailer interface {
	From() string
	Send(to []string, bcc []string, subject, htmlBody string) error
}

// MessageSender delivers SMS and WhatsApp messages, returning the provider
// message id.
type MessageSender interface {
	Send(phoneNumber, body, messageType string) (string, error)
}

// MeetingProvider schedules hosted video meetings.
type MeetingProvider interface {
	CreateMeeting(ctx context.Context, topic string, start time.Time, durationMinutes int) (*utils.ZoomMeeting, error)
}

// Telephony bridges click-to-call and recording downloads.
type Telephony interface {
	Connect(ctx context.Context, agentID, to string) error
	DownloadRecording(ctx context.Context, filename string) ([]byte, string, error)
}

// TextGenerator answers free-form prompts.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// parseDate accepts the date formats the frontend sends. An empty string
// yields nil without error.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", value)
}

// requireDate is parseDate for fields that must be present.
func requireDate(value, field string) (time.Time, error) {
	t, err := parseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	return *t, nil
}

// deleteIDs reads the id or ids query parameter of a DELETE request.
func deleteIDs(c *fiber.Ctx) ([]uint, error) {
	if ids := c.Query("ids"); ids != "" {
		return utils.ParseIDList(ids)
	}
	if id := c.Query("id"); id != "" {
		return utils.ParseIDList(id)
	}
	return nil, errors.New("id or ids query parameter is required")
}

// buildUpdates maps the JSON keys of a partial update body onto column names
// using the entity's field registry, parsing date fields along the way.
// Unknown keys and the id are ignored.
func buildUpdates(raw map[string]interface{}, columns map[string]string, dateFields map[string]bool) (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	for key, val := range raw {
		if key == "id" {
			continue
		}
		column, ok := columns[key]
		if !ok {
			continue
		}
		if dateFields[key] {
			s, _ := val.(string)
			t, err := parseDate(s)
			if err != nil {
				return nil, err
			}
			updates[column] = t
			continue
		}
		updates[column] = val
	}
	if len(updates) == 0 {
		return nil, errors.New("no updatable fields provided")
	}
	return updates, nil
}

// formFile reads a multipart file field into memory. A missing field is not
// an error; it returns ok=false.
func formFile(c *fiber.Ctx, field string) (content []byte, filename, contentType string, ok bool, err error) {
	header, ferr := c.FormFile(field)
	if ferr != nil || header == nil {
		return nil, "", "", false, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", "", false, err
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		return nil, "", "", false, err
	}
	contentType = header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return content, header.Filename, contentType, true, nil
}

// objectPath builds a collision-free storage path for an uploaded file.
func objectPath(folder, filename string) string {
	return fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixNano(), filename)
}

// toStringSlice coerces a decoded JSON array into []string, dropping
// non-string members.
func toStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
