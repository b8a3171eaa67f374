// Package submit implements the best-effort side-channel that runs after
// a successful poster export: the PNG is uploaded to a remote image host
// and the submitter's name plus the returned image URL are posted to a
// form relay. Failures are logged and otherwise discarded; nothing here
// may block or alter the user-visible export outcome.
package submit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Config carries the two endpoint definitions. An empty UploadURL
// disables the side-channel entirely.
type Config struct {
	UploadURL    string
	UploadPreset string
	CloudName    string
	RelayURL     string
	RelaySubject string
}

// Result is delivered on the completion channel for observability only;
// by contract no control flow depends on it.
type Result struct {
	ImageURL string
	Err      error
}

type Submitter struct {
	cfg    Config
	client *http.Client
	log    *log.Logger
}

func New(cfg Config, logger *log.Logger) *Submitter {
	return &Submitter{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger,
	}
}

// Enabled reports whether a submission endpoint is configured.
func (s *Submitter) Enabled() bool {
	return s.cfg.UploadURL != ""
}

// Submit spawns the side-channel and returns immediately. The returned
// channel receives exactly one Result and is then closed. Nothing is
// retried.
func (s *Submitter) Submit(name string, pngData []byte) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		res := s.run(name, pngData)
		if res.Err != nil {
			s.log.Warn("poster submission failed", "err", res.Err)
		} else {
			s.log.Info("poster submitted", "url", res.ImageURL)
		}
		ch <- res
	}()
	return ch
}

func (s *Submitter) run(name string, pngData []byte) Result {
	imageURL, err := s.uploadImage(pngData)
	if err != nil {
		return Result{Err: err}
	}
	if err := s.relay(name, imageURL); err != nil {
		return Result{ImageURL: imageURL, Err: err}
	}
	return Result{ImageURL: imageURL}
}

// uploadImage posts the raster to the image host and returns the remote
// reference from the response.
func (s *Submitter) uploadImage(pngData []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "poster.png")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(pngData); err != nil {
		return "", err
	}
	if err := w.WriteField("upload_preset", s.cfg.UploadPreset); err != nil {
		return "", err
	}
	if err := w.WriteField("cloud_name", s.cfg.CloudName); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	resp, err := s.client.Post(s.cfg.UploadURL, w.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("uploading image: status %d", resp.StatusCode)
	}

	var parsed struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding upload response: %w", err)
	}
	return parsed.SecureURL, nil
}

// relay posts the submitter name and remote image reference to the form
// relay. The email field is repurposed to carry the image URL; the
// response body is not parsed, only transport failure is reported.
func (s *Submitter) relay(name, imageURL string) error {
	if s.cfg.RelayURL == "" {
		return nil
	}
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"name":    name,
		"email":   imageURL,
		"subject": s.cfg.RelaySubject,
	} {
		if err := w.WriteField(field, value); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	resp, err := s.client.Post(s.cfg.RelayURL, w.FormDataContentType(), &body)
	if err != nil {
		return fmt.Errorf("posting to relay: %w", err)
	}
	resp.Body.Close()
	return nil
}
