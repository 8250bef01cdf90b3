package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikkim/shopit-client/internal/apitest"
)

func setupFileTest(t *testing.T) (*apitest.Server, FileService) {
	t.Helper()

	backend := apitest.New(t)
	signer := NewEndpointSigner(backend.SigningURL, 2*time.Second)
	return backend, NewFileService(signer, 2*time.Second)
}

func TestFileServiceGetUploadURL(t *testing.T) {
	_, svc := setupFileTest(t)

	key, uploadURL, err := svc.GetUploadURL(context.Background(), "영수증.pdf", "application/pdf")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"), "key keeps the original extension")
	assert.NotEqual(t, "영수증.pdf", key, "key must not reuse the user's file name")
	assert.Contains(t, uploadURL, key)
}

func TestFileServiceUploadDownloadRoundTrip(t *testing.T) {
	_, svc := setupFileTest(t)
	ctx := context.Background()
	content := "첨부파일 내용입니다"

	key, uploadURL, err := svc.GetUploadURL(ctx, "메모.txt", "text/plain")
	require.NoError(t, err)

	require.NoError(t, svc.Upload(ctx, uploadURL, "text/plain", strings.NewReader(content)))

	downloadURL, err := svc.GetDownloadURL(ctx, key, "메모.txt")
	require.NoError(t, err)

	destDir := t.TempDir()
	path, err := svc.Download(ctx, downloadURL, destDir, "메모.txt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "메모.txt"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestFileServiceDownloadMissingBlob(t *testing.T) {
	_, svc := setupFileTest(t)
	ctx := context.Background()

	downloadURL, err := svc.GetDownloadURL(ctx, "no-such-key.txt", "없는파일.txt")
	require.NoError(t, err)

	_, err = svc.Download(ctx, downloadURL, t.TempDir(), "없는파일.txt")
	assert.ErrorIs(t, err, ErrDownloadFailed)
}

func TestEndpointSignerRefusal(t *testing.T) {
	backend := apitest.New(t)
	signer := NewEndpointSigner(backend.SigningURL, 2*time.Second)

	// The endpoint answers requests without a file name with a non-200
	// envelope, which must surface as the sentinel, not a decode error.
	_, err := signer.SignUpload(context.Background(), "", "text/plain")
	assert.ErrorIs(t, err, ErrUploadURLFailed)

	_, err = signer.SignDownload(context.Background(), "", "원본.txt")
	assert.ErrorIs(t, err, ErrDownloadURLFailed)
}

func TestEndpointSignerUnreachable(t *testing.T) {
	signer := NewEndpointSigner("http://127.0.0.1:1/sign", time.Second)

	_, err := signer.SignUpload(context.Background(), "abc.txt", "text/plain")
	assert.ErrorIs(t, err, ErrUploadURLFailed)
}
