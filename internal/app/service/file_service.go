package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/shopit-client/pkg/logger"
)

var (
	ErrUploadURLFailed   = errors.New("파일 업로드 URL 생성에 실패했습니다.")
	ErrDownloadURLFailed = errors.New("파일 다운로드 URL 생성에 실패했습니다.")
	ErrUploadFailed      = errors.New("파일 업로드에 실패했습니다.")
	ErrDownloadFailed    = errors.New("파일 다운로드에 실패했습니다.")
)

// Signer issues time-limited pre-signed URLs for direct object storage
// access. Implemented by the remote signing endpoint (EndpointSigner)
// and by storage.S3Signer for deployments holding AWS credentials.
type Signer interface {
	SignUpload(ctx context.Context, key, contentType string) (string, error)
	SignDownload(ctx context.Context, key, originalName string) (string, error)
}

type FileService interface {
	// GetUploadURL names the object with a fresh random identifier plus
	// the original extension and returns the key and a pre-signed
	// upload URL.
	GetUploadURL(ctx context.Context, fileName, contentType string) (key string, uploadURL string, err error)
	GetDownloadURL(ctx context.Context, key, originalName string) (string, error)
	Upload(ctx context.Context, uploadURL, contentType string, data io.Reader) error
	// Download fetches the signed URL and writes the file under its
	// original name inside destDir, returning the written path.
	Download(ctx context.Context, downloadURL, destDir, originalName string) (string, error)
}

type fileService struct {
	signer     Signer
	httpClient *http.Client
}

func NewFileService(signer Signer, timeout time.Duration) FileService {
	return &fileService{
		signer: signer,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *fileService) GetUploadURL(ctx context.Context, fileName, contentType string) (string, string, error) {
	key := uuid.New().String() + filepath.Ext(fileName)

	uploadURL, err := s.signer.SignUpload(ctx, key, contentType)
	if err != nil {
		logger.Error("Failed to obtain upload URL", err, map[string]interface{}{
			"file_name": fileName,
		})
		return "", "", err
	}
	return key, uploadURL, nil
}

func (s *fileService) GetDownloadURL(ctx context.Context, key, originalName string) (string, error) {
	downloadURL, err := s.signer.SignDownload(ctx, key, originalName)
	if err != nil {
		logger.Error("Failed to obtain download URL", err, map[string]interface{}{
			"key": key,
		})
		return "", err
	}
	return downloadURL, nil
}

func (s *fileService) Upload(ctx context.Context, uploadURL, contentType string, data io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		logger.Warn("Upload rejected", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return ErrUploadFailed
	}
	return nil
}

func (s *fileService) Download(ctx context.Context, downloadURL, destDir, originalName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", ErrDownloadFailed
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	destPath := filepath.Join(destDir, filepath.Base(originalName))
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	logger.Info("File downloaded", map[string]interface{}{
		"path": destPath,
	})
	return destPath, nil
}

// EndpointSigner asks the external signing endpoint for pre-signed URLs.
// The endpoint answers with a proxied envelope: {statusCode, body} where
// body is a JSON string containing {url}.
type EndpointSigner struct {
	endpoint   string
	httpClient *http.Client
}

func NewEndpointSigner(endpoint string, timeout time.Duration) *EndpointSigner {
	return &EndpointSigner{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type signingEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func (s *EndpointSigner) SignUpload(ctx context.Context, key, contentType string) (string, error) {
	params := url.Values{}
	params.Set("filename", key)
	params.Set("contentType", contentType)
	return s.sign(ctx, params, ErrUploadURLFailed)
}

func (s *EndpointSigner) SignDownload(ctx context.Context, key, originalName string) (string, error) {
	params := url.Values{}
	params.Set("filename", key)
	params.Set("originalName", originalName)
	params.Set("mode", "get")
	return s.sign(ctx, params, ErrDownloadURLFailed)
}

func (s *EndpointSigner) sign(ctx context.Context, params url.Values, failure error) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", failure, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", failure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", failure, err)
	}

	var envelope signingEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("%w: %v", failure, err)
	}

	if envelope.StatusCode != http.StatusOK {
		logger.Warn("Signing endpoint refused", map[string]interface{}{
			"status_code": envelope.StatusCode,
		})
		return "", failure
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(envelope.Body), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", failure, err)
	}
	if payload.URL == "" {
		return "", failure
	}
	return payload.URL, nil
}
