package photo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"pantry-tracker/core/storage"
	"pantry-tracker/core/vision"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	uploadPrefix = "uploads/"
	resultPrefix = "results/"

	// timestampLayout prefixes stored filenames so repeated uploads of the
	// same file never collide.
	timestampLayout = "20060102_150405"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AllowedFile reports whether a filename carries an accepted image extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(path.Ext(filename))]
}

// SanitizeFilename strips directory components and unsafe characters from a
// client-supplied filename.
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return unsafeChars.ReplaceAllString(base, "_")
}

// AnalysisRecord is one persisted classification result.
type AnalysisRecord struct {
	Timestamp string             `json:"timestamp"`
	ImageFile string             `json:"image_file"`
	Items     []vision.Detection `json:"items"`
	// Filename is the record's own object name, set when listing.
	Filename string `json:"filename,omitempty"`
}

// Service stores uploaded photos and their analysis results.
type Service struct {
	store  storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new photo service over the given bucket.
func NewService(store storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{store: store, bucket: bucket, logger: logger}
}

// SaveUpload stores the photo bytes under uploads/ with a timestamped,
// sanitized name and returns that name.
func (s *Service) SaveUpload(ctx context.Context, filename string, data []byte) (string, error) {
	stored := fmt.Sprintf("%s_%s", time.Now().Format(timestampLayout), SanitizeFilename(filename))

	_, err := s.store.PutObject(ctx, s.bucket, uploadPrefix+stored,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: ContentTypeFor(stored)})
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	s.logger.Info("Photo saved", zap.String("object", uploadPrefix+stored))
	return stored, nil
}

// GetUpload returns the bytes of a stored photo.
func (s *Service) GetUpload(ctx context.Context, filename string) ([]byte, error) {
	if filename != path.Base(filename) {
		return nil, ErrUploadNotFound
	}

	obj, err := s.store.GetObject(ctx, s.bucket, uploadPrefix+filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return data, nil
}

// SaveAnalysis persists the detections for a stored photo as a JSON record
// under results/ and returns the record's object name.
func (s *Service) SaveAnalysis(ctx context.Context, imageFile string, detections []vision.Detection) (string, error) {
	base := strings.TrimSuffix(imageFile, path.Ext(imageFile))
	name := fmt.Sprintf("analysis_%s.json", base)

	record := AnalysisRecord{
		Timestamp: time.Now().Format(time.RFC3339),
		ImageFile: imageFile,
		Items:     detections,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	_, err = s.store.PutObject(ctx, s.bucket, resultPrefix+name,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to store analysis: %w", err)
	}

	s.logger.Info("Analysis results saved", zap.String("object", resultPrefix+name))
	return name, nil
}

// ListAnalysisResults returns every stored analysis record.
func (s *Service) ListAnalysisResults(ctx context.Context) ([]AnalysisRecord, error) {
	records := []AnalysisRecord{}

	for obj := range s.store.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: resultPrefix}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		name := strings.TrimPrefix(obj.Key, resultPrefix)
		if !strings.HasSuffix(name, ".json") {
			continue
		}

		record, err := s.GetAnalysisResult(ctx, name)
		if err != nil {
			s.logger.Warn("Skipping unreadable analysis record", zap.String("object", obj.Key), zap.Error(err))
			continue
		}
		records = append(records, *record)
	}

	return records, nil
}

// GetAnalysisResult fetches and decodes one analysis record. A missing
// .json suffix is appended.
func (s *Service) GetAnalysisResult(ctx context.Context, filename string) (*AnalysisRecord, error) {
	if filename != path.Base(filename) {
		return nil, ErrAnalysisNotFound
	}
	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	obj, err := s.store.GetObject(ctx, s.bucket, resultPrefix+filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}

	var record AnalysisRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	record.Filename = filename
	return &record, nil
}

// ContentTypeFor maps an image filename to its MIME type.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
