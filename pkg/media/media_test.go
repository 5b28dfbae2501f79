package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"videotube/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	uploaded  map[string][]byte
	types     map[string]string
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploaded: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) Upload(_ context.Context, key string, body io.ReadSeeker, _ int64, contentType string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded[key] = data
	s.types[key] = contentType
	return "https://cdn.test/" + key, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return s.deleteErr
}

func (s *fakeStore) KeyFromURL(url string) (string, error) {
	key := strings.TrimPrefix(url, "https://cdn.test/")
	if key == url {
		return "", errors.New("foreign url")
	}
	return key, nil
}

func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File[field][0]
}

func newTestCoordinator(t *testing.T, store ObjectStore) *Coordinator {
	log := logger.New()
	log.SetOutput(io.Discard)
	return NewCoordinator(store, t.TempDir(), log)
}

func tempEntries(t *testing.T, dir string) int {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	return len(entries)
}

func TestIsImageAndIsVideo(t *testing.T) {
	assert.True(t, IsImage("me.PNG"))
	assert.False(t, IsImage("me.mp4"))
	assert.True(t, IsVideo("clip.mp4"))
	assert.False(t, IsVideo("clip.txt"))
}

func TestUploadImage(t *testing.T) {
	store := newFakeStore()
	m := newTestCoordinator(t, store)

	url, err := m.UploadImage(context.Background(), fileHeader(t, "avatar", "me.png", []byte("png-bytes")), FolderAvatars)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.test/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	key := strings.TrimPrefix(url, "https://cdn.test/")
	assert.Equal(t, []byte("png-bytes"), store.uploaded[key])
	assert.Equal(t, "image/png", store.types[key])
	assert.Zero(t, tempEntries(t, m.tempDir))
}

func TestStageAndUpload_RemovesFileOnFailure(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = errors.New("bucket gone")
	m := newTestCoordinator(t, store)

	path, err := m.Stage(fileHeader(t, "thumbnail", "t.jpg", []byte("jpg")))
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = m.StageAndUpload(context.Background(), path, FolderThumbnails)
	assert.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStageAndUpload_MissingFile(t *testing.T) {
	m := newTestCoordinator(t, newFakeStore())

	_, err := m.StageAndUpload(context.Background(), "/does/not/exist.png", FolderAvatars)
	assert.Error(t, err)
}

func TestUploadVideo_ProbesDuration(t *testing.T) {
	store := newFakeStore()
	m := newTestCoordinator(t, store)
	m.probe = func(string) (float64, error) { return 12.5, nil }

	asset, err := m.UploadVideo(context.Background(), fileHeader(t, "videoFile", "clip.mp4", []byte("mp4")))
	require.NoError(t, err)

	assert.Equal(t, 12.5, asset.Duration)
	assert.True(t, strings.HasPrefix(asset.URL, "https://cdn.test/videos/"))
}

func TestUploadVideo_ProbeFailureFallsBackToZero(t *testing.T) {
	m := newTestCoordinator(t, newFakeStore())
	m.probe = func(string) (float64, error) { return 0, errors.New("ffprobe missing") }

	asset, err := m.UploadVideo(context.Background(), fileHeader(t, "videoFile", "clip.mp4", []byte("mp4")))
	require.NoError(t, err)
	assert.Zero(t, asset.Duration)
}

func TestDeleteRemote(t *testing.T) {
	store := newFakeStore()
	m := newTestCoordinator(t, store)

	m.DeleteRemote("https://cdn.test/thumbnails/old.png")
	m.DeleteRemote("https://elsewhere.test/x.png")
	m.DeleteRemote("")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Wait(ctx))

	assert.Equal(t, []string{"thumbnails/old.png"}, store.deleted)
}

func TestDeleteRemote_FailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("denied")
	m := newTestCoordinator(t, store)

	m.DeleteRemote("https://cdn.test/videos/v.mp4")

	require.NoError(t, m.Wait(context.Background()))
	assert.Len(t, store.deleted, 1)
}
