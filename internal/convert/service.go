package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imgshift/imgshift/internal/httputil"
	"github.com/imgshift/imgshift/internal/model"
	"github.com/imgshift/imgshift/internal/platform"
	"github.com/imgshift/imgshift/internal/verify"
)

var (
	// ErrConversionInFlight is returned when a submission arrives while
	// another conversion is still running.
	ErrConversionInFlight = errors.New("a conversion is already in progress")

	// ErrNoSourceFile is returned when no source file is selected.
	ErrNoSourceFile = errors.New("no source file selected")

	// ErrUnsupportedFormat is returned for a target format outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported target format")
)

// Request describes a single conversion submission.
type Request struct {
	SourcePath string
	Target     model.Format
	OutputName string // optional name override forwarded to the service
}

// Service handles conversion operations
type Service struct {
	tasks        map[string]*model.ConversionTask
	tasksMutex   sync.RWMutex
	activeID     string
	serviceURL   string
	action       string
	downloadsDir string
	verifier     verify.Verifier
	httpClient   *http.Client
	onUpdate     func(*model.ConversionTask) // callback for UI updates
}

// NewService creates a new conversion service. A nil httpClient selects a
// default without a request timeout, since large uploads may legitimately
// take long; cancellation is handled through the request context.
func NewService(serviceURL, action, downloadsDir string, verifier verify.Verifier, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Service{
		tasks:        make(map[string]*model.ConversionTask),
		serviceURL:   strings.TrimRight(serviceURL, "/"),
		action:       action,
		downloadsDir: downloadsDir,
		verifier:     verifier,
		httpClient:   httpClient,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ConversionTask)) {
	s.onUpdate = callback
}

// Submit validates the request and starts a conversion task. Only one
// conversion runs at a time; submissions while one is active are rejected
// with ErrConversionInFlight.
func (s *Service) Submit(req Request) (*model.ConversionTask, error) {
	if strings.TrimSpace(req.SourcePath) == "" {
		return nil, ErrNoSourceFile
	}

	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source path is a directory: %s", req.SourcePath)
	}

	if !req.Target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(req.Target))
	}

	s.tasksMutex.Lock()
	if s.activeID != "" {
		s.tasksMutex.Unlock()
		return nil, ErrConversionInFlight
	}

	task := &model.ConversionTask{
		ID:         generateTaskID(),
		SourcePath: req.SourcePath,
		SourceName: filepath.Base(req.SourcePath),
		Target:     req.Target,
		OutputName: req.OutputName,
		Status:     model.TaskStatusPending,
		InputSize:  info.Size(),
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task
	s.activeID = task.ID
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	go s.runTask(task)

	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.ConversionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks, newest first.
func (s *Service) GetAllTasks() []*model.ConversionTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.ConversionTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.After(tasks[j].StartedAt)
	})
	return tasks
}

// IsBusy reports whether a conversion is currently in flight.
func (s *Service) IsBusy() bool {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.activeID != ""
}

// RemoveTask removes a finished task from the history.
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.Status.IsActive() {
		return fmt.Errorf("task is still active: %s", id)
	}

	delete(s.tasks, id)
	return nil
}

// SetDownloadsDirectory sets the directory converted images are saved to
func (s *Service) SetDownloadsDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadsDir = dir
}

// runTask drives a task through verification and upload. The active slot
// is released on every exit path so the next submission can start.
func (s *Service) runTask(task *model.ConversionTask) {
	defer func() {
		s.tasksMutex.Lock()
		if s.activeID == task.ID {
			s.activeID = ""
		}
		s.tasksMutex.Unlock()
	}()

	ctx := context.Background()

	s.setTaskStatus(task, model.TaskStatusVerifying)

	token, err := s.verifier.Execute(ctx, s.action)
	if err == nil && strings.TrimSpace(token) == "" {
		// An empty token must never reach the service.
		err = verify.ErrEmptyToken
	}
	if err != nil {
		s.failTask(task, fmt.Errorf("verification: %w", err))
		return
	}

	s.setTaskStatus(task, model.TaskStatusUploading)

	outputPath, outputSize, err := s.upload(ctx, task, token)
	if err != nil {
		s.failTask(task, err)
		return
	}

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusCompleted
	task.OutputPath = outputPath
	task.OutputSize = outputSize
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Printf("Conversion %s completed: %s", task.ID, outputPath)
	s.notifyUpdate(task)
}

// upload sends the multipart conversion request and saves the returned
// image under the downloads directory.
func (s *Service) upload(ctx context.Context, task *model.ConversionTask, token string) (string, int64, error) {
	body, contentType, err := s.buildRequestBody(task, token)
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serviceURL+"/api/convert", body)
	if err != nil {
		return "", 0, fmt.Errorf("creating conversion request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("uploading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, fmt.Errorf("conversion failed: %s", httputil.ErrorMessage(resp))
	}

	filename := ResolveFilename(resp.Header.Get("Content-Disposition"), task.Target)
	return s.saveResult(resp.Body, filename)
}

// buildRequestBody assembles the multipart form with the source file, the
// target format, and the verification token.
func (s *Service) buildRequestBody(task *model.ConversionTask, token string) (*bytes.Buffer, string, error) {
	file, err := os.Open(task.SourcePath)
	if err != nil {
		return nil, "", fmt.Errorf("opening source file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", task.SourceName)
	if err != nil {
		return nil, "", fmt.Errorf("preparing upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("reading source file: %w", err)
	}

	if err := writer.WriteField("target_format", task.Target.String()); err != nil {
		return nil, "", fmt.Errorf("preparing upload: %w", err)
	}
	if err := writer.WriteField("g-recaptcha-response", token); err != nil {
		return nil, "", fmt.Errorf("preparing upload: %w", err)
	}
	if task.OutputName != "" {
		if err := writer.WriteField("output_filename", task.OutputName); err != nil {
			return nil, "", fmt.Errorf("preparing upload: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing upload: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

// saveResult writes the response body to a temporary file and renames it
// into place, so a partially written file never appears under the final
// name. The destination is uniquified instead of overwritten.
func (s *Service) saveResult(body io.Reader, filename string) (string, int64, error) {
	s.tasksMutex.RLock()
	destDir := s.downloadsDir
	s.tasksMutex.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		return "", 0, err
	}

	tempFile, err := os.CreateTemp(destDir, ".imgshift-*.part")
	if err != nil {
		return "", 0, fmt.Errorf("creating temporary file: %w", err)
	}
	tempPath := tempFile.Name()

	written, err := io.Copy(tempFile, body)
	if err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("saving converted image: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("saving converted image: %w", err)
	}

	destPath := platform.UniquePath(filepath.Join(destDir, filename))
	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return "", 0, fmt.Errorf("moving converted image into place: %w", err)
	}

	return destPath, written, nil
}

// setTaskStatus updates the status and notifies the UI.
func (s *Service) setTaskStatus(task *model.ConversionTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// failTask marks the task as failed and notifies the UI.
func (s *Service) failTask(task *model.ConversionTask, err error) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	log.Printf("Conversion %s failed: %v", task.ID, err)
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ConversionTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("convert-%d", time.Now().UnixNano())
	}
	return "convert-" + id.String()
}
