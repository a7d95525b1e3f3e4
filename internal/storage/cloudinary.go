package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"ratil/internal/middleware"
	"ratil/internal/models"
	"ratil/internal/observability"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// uploadFailed prefixes every upload error reported to API callers.
const uploadFailed = "File upload failed"

// ErrNotConfigured is returned when no asset host credentials are set.
var ErrNotConfigured = errors.New("asset host credentials are not configured")

// CloudinaryConfig holds the asset host account settings.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
}

// CloudinaryUploader uploads files with the Cloudinary REST upload API using
// signed requests.
type CloudinaryUploader struct {
	cfg    CloudinaryConfig
	client *resty.Client
	now    func() time.Time
}

type cloudinaryResponse struct {
	SecureURL    string `json:"secure_url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewCloudinaryUploader returns an uploader for the given account. A nil
// client gets a default resty client.
func NewCloudinaryUploader(cfg CloudinaryConfig, client *resty.Client) *CloudinaryUploader {
	if client == nil {
		client = resty.New()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &CloudinaryUploader{cfg: cfg, client: client, now: time.Now}
}

func (u *CloudinaryUploader) configured() bool {
	return u.cfg.CloudName != "" && u.cfg.APIKey != "" && u.cfg.APISecret != ""
}

// Upload sends the file in one signed multipart request. Failures are
// returned as upstream errors carrying the host's message; nothing is retried.
func (u *CloudinaryUploader) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	resourceType := in.ResourceType
	if resourceType == "" {
		resourceType = ResourceTypeFor(in.File.ContentType, false)
	}

	start := time.Now()
	span, ctx := observability.NewSpan(ctx, "cloudinary.upload",
		attribute.String("asset.resource_type", resourceType),
		attribute.String("asset.folder", in.Folder),
	)
	defer span.End()

	res, err := u.upload(ctx, resourceType, in)
	if err != nil {
		span.SetError(err)
		observability.ObserveUpload(resourceType, observability.OutcomeFailure, start)
		middleware.Logger.ErrorContext(ctx, "asset upload failed",
			slog.String("resource_type", resourceType),
			slog.String("folder", in.Folder),
			slog.String("error", err.Error()),
		)
		return nil, models.NewUpstreamError(uploadFailed, err)
	}

	observability.ObserveUpload(resourceType, observability.OutcomeSuccess, start)
	span.AddAttributes(attribute.String("asset.public_id", res.PublicID))
	return res, nil
}

func (u *CloudinaryUploader) upload(ctx context.Context, resourceType string, in UploadInput) (*UploadResult, error) {
	if !u.configured() {
		return nil, ErrNotConfigured
	}
	if in.File.Reader == nil {
		return nil, errors.New("no file content")
	}

	params := map[string]string{
		"public_id": uuid.NewString(),
		"timestamp": strconv.FormatInt(u.now().Unix(), 10),
	}
	if in.Folder != "" {
		params["folder"] = in.Folder
	}

	form := make(map[string]string, len(params)+2)
	for k, v := range params {
		form[k] = v
	}
	form["api_key"] = u.cfg.APIKey
	form["signature"] = Sign(params, u.cfg.APISecret)

	filename := in.File.Filename
	if filename == "" {
		filename = "upload"
	}

	var ok cloudinaryResponse
	var failure cloudinaryError
	resp, err := u.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetMultipartField("file", filename, in.File.ContentType, in.File.Reader).
		SetResult(&ok).
		SetError(&failure).
		Post(fmt.Sprintf("%s/%s/%s/upload", u.cfg.BaseURL, u.cfg.CloudName, resourceType))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if failure.Error.Message != "" {
			return nil, errors.New(failure.Error.Message)
		}
		return nil, fmt.Errorf("asset host returned %s", resp.Status())
	}
	if ok.SecureURL == "" {
		return nil, errors.New("asset host returned no secure_url")
	}

	return &UploadResult{
		SecureURL:    ok.SecureURL,
		PublicID:     ok.PublicID,
		ResourceType: ok.ResourceType,
	}, nil
}

// Sign computes the Cloudinary request signature: the SHA-1 hex digest of the
// parameters sorted by name, joined as k=v pairs with '&', followed by the
// API secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
