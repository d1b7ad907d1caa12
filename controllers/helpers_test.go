package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"skillcapital/models"
	"skillcapital/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Lead{},
		&models.Campaign{},
		&models.Batch{},
		&models.Trainer{},
		&models.Learner{},
		&models.LearnerBatch{},
		&models.Task{},
		&models.MainTask{},
		&models.Meeting{},
		&models.Email{},
		&models.EmailTemplate{},
		&models.Message{},
		&models.MessageTemplate{},
		&models.Note{},
		&models.Activity{},
		&models.Call{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// jsonRequest runs a request with a JSON body through the fiber app.
func jsonRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// multipartRequest runs a multipart form request through the fiber app.
func multipartRequest(t *testing.T, app *fiber.App, method, target string, fields map[string]string, files map[string][]byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// fakeDirectory is an in-memory ProfileDirectory.
type fakeDirectory struct {
	mu       sync.Mutex
	users    map[string]utils.UserProfile
	failNext bool
	lookups  int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: make(map[string]utils.UserProfile)}
}

func (d *fakeDirectory) GetUser(_ context.Context, id string) (*utils.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lookups++
	if d.failNext {
		return nil, fmt.Errorf("directory unavailable")
	}
	if profile, ok := d.users[id]; ok {
		return &profile, nil
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (d *fakeDirectory) ListUsers(_ context.Context) ([]utils.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failNext {
		return nil, fmt.Errorf("directory unavailable")
	}
	var profiles []utils.UserProfile
	for _, p := range d.users {
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (d *fakeDirectory) Login(_ context.Context, email, password string) (*utils.Session, error) {
	if password != "secret" {
		return nil, fmt.Errorf("invalid grant")
	}
	return &utils.Session{AccessToken: "token", User: utils.UserProfile{Email: email}}, nil
}

// fakeStore records uploads and deletions.
type fakeStore struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (s *fakeStore) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, path)
	return "https://files.test/public/" + path, nil
}

func (s *fakeStore) Delete(_ context.Context, publicURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, publicURL)
	return nil
}

func (s *fakeStore) deleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deletes)
}

// fakeMailer records sends.
type fakeMailer struct {
	sends []sentMail
	err   error
}

type sentMail struct {
	To      []string
	Bcc     []string
	Subject string
	Body    string
}

func (m *fakeMailer) From() string { return "noreply@skillcapital.test" }

func (m *fakeMailer) Send(to []string, bcc []string, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sends = append(m.sends, sentMail{To: to, Bcc: bcc, Subject: subject, Body: htmlBody})
	return nil
}

// fakeSender records outbound messages.
type fakeSender struct {
	sends []sentMessage
	err   error
}

type sentMessage struct {
	Phone string
	Body  string
	Type  string
}

func (s *fakeSender) Send(phoneNumber, body, messageType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sends = append(s.sends, sentMessage{Phone: phoneNumber, Body: body, Type: messageType})
	return fmt.Sprintf("SM%04d", len(s.sends)), nil
}

// fakeMeetings returns a canned provider meeting and records the request.
type fakeMeetings struct {
	lastTopic    string
	lastDuration int
	err          error
}

func (m *fakeMeetings) CreateMeeting(_ context.Context, topic string, _ time.Time, durationMinutes int) (*utils.ZoomMeeting, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastTopic = topic
	m.lastDuration = durationMinutes
	return &utils.ZoomMeeting{ID: 987654321, JoinURL: "https://zoom.test/j/987654321", HostID: "host-1"}, nil
}

// fakeTelephony records connect calls and serves a canned recording.
type fakeTelephony struct {
	connects []string
}

func (t *fakeTelephony) Connect(_ context.Context, agentID, to string) error {
	t.connects = append(t.connects, agentID+"->"+to)
	return nil
}

func (t *fakeTelephony) DownloadRecording(_ context.Context, filename string) ([]byte, string, error) {
	return []byte("audio-bytes-" + filename), "audio/mpeg", nil
}

// fakeGenerator echoes prompts.
type fakeGenerator struct{}

func (fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	return "draft: " + prompt, nil
}

// createdAt backdates a row so ordering assertions are deterministic.
func createdAt(db *gorm.DB, t *testing.T, model interface{}, id uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(model).Where("id = ?", id).Update("created_at", at).Error)
}
