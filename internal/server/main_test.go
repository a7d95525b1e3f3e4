package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"ratil/internal/config"
	"ratil/internal/database"
	"ratil/internal/models"
	"ratil/internal/seed"
	"ratil/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testAdminPassword = "password123"

// fakeUploader records uploads instead of calling the asset host.
type fakeUploader struct {
	mu      sync.Mutex
	calls   []storage.UploadInput
	bodies  [][]byte
	url     string
	failure error
}

func (f *fakeUploader) Upload(_ context.Context, in storage.UploadInput) (*storage.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, err := io.ReadAll(in.File.Reader)
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, in)
	f.bodies = append(f.bodies, body)

	if f.failure != nil {
		return nil, models.NewUpstreamError("File upload failed", f.failure)
	}
	return &storage.UploadResult{SecureURL: f.url, ResourceType: in.ResourceType}, nil
}

func (f *fakeUploader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeUploader) lastCall() storage.UploadInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

type testEnv struct {
	server   *Server
	app      *fiber.App
	db       *gorm.DB
	uploader *fakeUploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.Bootstrap(context.Background(), db, seed.Options{
		AdminPassword: testAdminPassword,
		HashCost:      bcrypt.MinCost,
	}))

	cfg := &config.Config{
		Port:                "8000",
		Env:                 "test",
		BodyLimitMB:         50,
		AllowedOrigins:      "*",
		ContentUploadFolder: config.DefaultContentUploadFolder,
	}
	up := &fakeUploader{url: "https://res.cloudinary.com/demo/image/upload/v1/asset.jpg"}

	s := NewServerWithDeps(cfg, db, nil, up)
	s.userService.WithHashCost(bcrypt.MinCost)

	return &testEnv{server: s, app: s.NewApp(), db: db, uploader: up}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.do(t, req)
}

func (e *testEnv) category(t *testing.T, name string) models.Category {
	t.Helper()
	var category models.Category
	require.NoError(t, e.db.Where("name = ?", name).First(&category).Error)
	return category
}

type testFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...testFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.filename))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeJSON(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func decodeError(t *testing.T, resp *http.Response) models.ErrorResponse {
	t.Helper()
	var body models.ErrorResponse
	decodeJSON(t, resp, &body)
	return body
}

var errUpstream = errors.New("invalid cloud credentials")
