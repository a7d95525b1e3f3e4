// Package storage proxies uploaded media to the external asset host and
// builds the folder layout assets are filed under.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Resource types understood by the asset host.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
	ResourceAuto  = "auto"
)

// File is an uploaded file as received from a multipart form.
type File struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// UploadInput describes one upload to the asset host.
type UploadInput struct {
	File         File
	Folder       string
	ResourceType string
}

// UploadResult is what the asset host reports back for a stored asset.
type UploadResult struct {
	SecureURL    string
	PublicID     string
	ResourceType string
}

// Uploader stores a file on the asset host and returns its durable URL.
type Uploader interface {
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
}

// ResourceTypeFor classifies a declared MIME type. When auto is set the host
// detects the type itself. Otherwise video types map to video and everything
// else, including an empty type, maps to image.
func ResourceTypeFor(contentType string, auto bool) string {
	if auto {
		return ResourceAuto
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "video") {
		return ResourceVideo
	}
	return ResourceImage
}

// PortfolioFolder returns portfolio/{YYYY}/{MM}/{DD}/{client}, where client is
// the client name with spaces replaced by underscores, or "General".
func PortfolioFolder(t time.Time, clientName string) string {
	name := strings.TrimSpace(clientName)
	if name == "" {
		name = "General"
	} else {
		name = strings.ReplaceAll(name, " ", "_")
	}
	return fmt.Sprintf("portfolio/%04d/%02d/%02d/%s", t.Year(), int(t.Month()), t.Day(), name)
}

// Resolve returns the asset URL for a request carrying an optional file and
// an optional external link. A file is uploaded; a bare link is returned
// verbatim without contacting the host. With neither, the URL is empty.
func Resolve(ctx context.Context, up Uploader, file *File, link, folder string, auto bool) (string, error) {
	if file == nil {
		return strings.TrimSpace(link), nil
	}

	res, err := up.Upload(ctx, UploadInput{
		File:         *file,
		Folder:       folder,
		ResourceType: ResourceTypeFor(file.ContentType, auto),
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}
