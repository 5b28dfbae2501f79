// Package media stages uploaded files on local disk, pushes them to object
// storage and removes replaced assets in the background.
package media

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"videotube/pkg/logger"
	"videotube/pkg/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderThumbnails = "thumbnails"
	FolderVideos     = "videos"
)

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	videoExts = map[string]bool{".mp4": true, ".mov": true, ".webm": true, ".mkv": true, ".avi": true}
)

// ObjectStore is satisfied by the s3 and minio clients.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, error)
}

type Asset struct {
	URL      string
	Duration float64
}

type Coordinator struct {
	store         ObjectStore
	tempDir       string
	log           *logger.Logger
	deleteTimeout time.Duration
	probe         func(path string) (float64, error)
	pending       sync.WaitGroup
}

func NewCoordinator(store ObjectStore, tempDir string, log *logger.Logger) *Coordinator {
	return &Coordinator{
		store:         store,
		tempDir:       tempDir,
		log:           log,
		deleteTimeout: 30 * time.Second,
		probe:         probeDuration,
	}
}

func IsImage(filename string) bool {
	return imageExts[strings.ToLower(filepath.Ext(filename))]
}

func IsVideo(filename string) bool {
	return videoExts[strings.ToLower(filepath.Ext(filename))]
}

// Stage copies an uploaded part into the temp dir and returns its path.
func (m *Coordinator) Stage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	if err := os.MkdirAll(m.tempDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create temp dir")
	}
	dst, err := os.CreateTemp(m.tempDir, "upload-*"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", errors.Wrap(err, "write temp file")
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", errors.Wrap(err, "close temp file")
	}
	return dst.Name(), nil
}

// StageAndUpload pushes a staged file under folder and always removes the
// local copy.
func (m *Coordinator) StageAndUpload(ctx context.Context, localPath, folder string) (string, error) {
	defer m.discard(localPath)

	url, err := m.upload(ctx, localPath, folder)
	metrics.RecordUpload(folder, err)
	if err != nil {
		m.log.Error("Failed to upload %s to %s: %v", localPath, folder, err)
		return "", err
	}
	return url, nil
}

func (m *Coordinator) UploadImage(ctx context.Context, fh *multipart.FileHeader, folder string) (string, error) {
	path, err := m.Stage(fh)
	if err != nil {
		m.log.Error("Failed to stage %s: %v", fh.Filename, err)
		return "", err
	}
	return m.StageAndUpload(ctx, path, folder)
}

// UploadVideo also probes the staged file for its duration; a failed probe
// yields zero.
func (m *Coordinator) UploadVideo(ctx context.Context, fh *multipart.FileHeader) (*Asset, error) {
	path, err := m.Stage(fh)
	if err != nil {
		m.log.Error("Failed to stage %s: %v", fh.Filename, err)
		return nil, err
	}

	duration, perr := m.probe(path)
	if perr != nil {
		m.log.Warn("Failed to probe duration of %s: %v", fh.Filename, perr)
		duration = 0
	}

	url, err := m.StageAndUpload(ctx, path, FolderVideos)
	if err != nil {
		return nil, err
	}
	return &Asset{URL: url, Duration: duration}, nil
}

// DeleteRemote removes the object behind url without blocking the caller.
// Failures are logged only.
func (m *Coordinator) DeleteRemote(url string) {
	if url == "" {
		return
	}
	key, err := m.store.KeyFromURL(url)
	if err != nil {
		m.log.Warn("Skipping remote delete: %v", err)
		return
	}

	m.pending.Add(1)
	go func() {
		defer m.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), m.deleteTimeout)
		defer cancel()

		err := m.store.Delete(ctx, key)
		metrics.RecordDelete(err)
		if err != nil {
			m.log.Error("Failed to delete %s from storage: %v", key, err)
		}
	}()
}

// Wait blocks until detached deletions finish or ctx is done.
func (m *Coordinator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Coordinator) upload(ctx context.Context, localPath, folder string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "open staged file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(err, "stat staged file")
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", localPath)
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := folder + "/" + uuid.New().String() + ext
	return m.store.Upload(ctx, key, f, info.Size(), contentType)
}

func (m *Coordinator) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.log.Warn("Failed to remove staged file %s: %v", path, err)
	}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}

	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return 0, errors.Wrap(err, "decode ffprobe output")
	}
	seconds, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse duration")
	}
	return seconds, nil
}
