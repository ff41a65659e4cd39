package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"movpress/internal/encoding"
	"movpress/internal/history"
	"movpress/internal/logging"
	"movpress/internal/preflight"
	"movpress/internal/preset"
	"movpress/internal/services"
)

const uploadFallbackName = "upload.mov"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.renderIndex(w)
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("parse upload (limit %d MiB): %v", s.cfg.Web.MaxUploadMiB, err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	upload, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer upload.Close()

	jobID := uuid.NewString()
	logger := s.logger.With(logging.String("job", jobID))

	jobDir := filepath.Join(s.cfg.Paths.WorkDir, "web-"+jobID)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		s.writeError(w, http.StatusInternalServerError, "prepare job directory")
		logger.Error("prepare job directory", logging.Error(err))
		return
	}
	// The job directory is request-scoped and removed on every exit path.
	defer func() {
		if err := os.RemoveAll(jobDir); err != nil {
			logger.Warn("cleanup job directory", logging.Error(err))
		}
	}()

	inputPath := filepath.Join(jobDir, uploadName(header.Filename))
	if err := saveUpload(inputPath, upload); err != nil {
		s.writeError(w, http.StatusInternalServerError, "store upload")
		logger.Error("store upload", logging.Error(err))
		return
	}

	if err := s.inspectUpload(r, inputPath, logger); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := s.requestFromForm(r, inputPath)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	plan, err := encoding.Resolve(req)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}

	started := time.Now()
	result, err := s.runner.Run(r.Context(), plan)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		logger.Error("compress failed", logging.Error(err))
		return
	}

	s.record(r, plan, result, started, logger)
	s.serveResult(w, result, logger)
}

// requestFromForm builds a compression Request from the submitted fields,
// falling back to the configured defaults for preset and codec. The output
// path is forced into the job directory.
func (s *Server) requestFromForm(r *http.Request, inputPath string) (encoding.Request, error) {
	req := encoding.Request{
		Input:  inputPath,
		Preset: strings.TrimSpace(r.FormValue("preset")),
		Scale:  strings.TrimSpace(r.FormValue("scale")),
		Codec:  strings.TrimSpace(r.FormValue("codec")),
		Output: encoding.DeriveOutputPath(inputPath),
	}
	if req.Preset == "" {
		req.Preset = s.cfg.Encoder.DefaultPreset
	}
	if req.Codec == "" {
		req.Codec = s.cfg.Encoder.DefaultCodec
	}
	if value := strings.TrimSpace(r.FormValue("crf")); value != "" {
		crf, err := strconv.Atoi(value)
		if err != nil {
			return encoding.Request{}, services.Field("crf", fmt.Sprintf("value %q is not an integer", value))
		}
		req.CRF = &crf
	}
	if value := strings.TrimSpace(r.FormValue("fps")); value != "" {
		fps, err := strconv.Atoi(value)
		if err != nil {
			return encoding.Request{}, services.Field("fps", fmt.Sprintf("value %q is not an integer", value))
		}
		req.FPS = fps
	}
	return req, nil
}

// inspectUpload rejects files ffprobe cannot identify as video. A missing
// ffprobe binary skips the check; the encoder will surface the failure.
func (s *Server) inspectUpload(r *http.Request, inputPath string, logger *slog.Logger) error {
	probed, err := s.probe(r.Context(), s.cfg.Encoder.FFprobeBinary, inputPath)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			logger.Debug("ffprobe unavailable, skipping upload inspection")
			return nil
		}
		return errors.New("uploaded file is not a readable video")
	}
	if probed.VideoStreamCount() == 0 {
		return errors.New("uploaded file contains no video stream")
	}
	logger.Debug("upload inspected",
		logging.Float64("duration_seconds", probed.DurationSeconds()),
		logging.Int("streams", probed.Format.NBStreams),
	)
	return nil
}

func (s *Server) record(r *http.Request, plan encoding.Plan, result encoding.Result, started time.Time, logger *slog.Logger) {
	if s.store == nil {
		return
	}
	entry := history.Entry{
		Source:      history.SourceWeb,
		InputName:   filepath.Base(result.InputPath),
		OutputName:  filepath.Base(result.OutputPath),
		Preset:      plan.PresetName,
		Codec:       plan.Encoder,
		CRF:         plan.CRF,
		InputBytes:  result.InputBytes,
		OutputBytes: result.OutputBytes,
		Ratio:       result.Ratio,
		DurationMS:  time.Since(started).Milliseconds(),
	}
	if _, err := s.store.Record(r.Context(), entry); err != nil {
		logger.Warn("record history", logging.Error(err))
	}
}

func (s *Server) serveResult(w http.ResponseWriter, result encoding.Result, logger *slog.Logger) {
	output, err := os.Open(result.OutputPath)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "open compressed output")
		logger.Error("open compressed output", logging.Error(err))
		return
	}
	defer output.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(result.OutputPath)))
	w.Header().Set("Content-Length", strconv.FormatInt(result.OutputBytes, 10))
	if _, err := io.Copy(w, output); err != nil {
		logger.Error("stream compressed output", logging.Error(err))
	}
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	type presetView struct {
		Name        string `json:"name"`
		CRF         int    `json:"crf"`
		Speed       string `json:"speed"`
		Scale       string `json:"scale,omitempty"`
		Description string `json:"description"`
	}
	presets := preset.List()
	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		views = append(views, presetView{
			Name:        p.Name,
			CRF:         p.CRF,
			Speed:       p.Speed,
			Scale:       p.Scale,
			Description: p.Description,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"presets": views})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	type checkView struct {
		Name   string `json:"name"`
		Passed bool   `json:"passed"`
		Detail string `json:"detail"`
	}
	checks := preflight.RunAll(s.cfg)
	views := make([]checkView, 0, len(checks))
	for _, check := range checks {
		views = append(views, checkView{Name: check.Name, Passed: check.Passed, Detail: check.Detail})
	}
	payload := map[string]any{
		"running":        true,
		"pid":            os.Getpid(),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"history":        s.store != nil,
		"checks":         views,
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"entries": []history.Entry{}})
		return
	}
	limit := 20
	if value := strings.TrimSpace(r.URL.Query().Get("limit")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func uploadName(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return uploadFallbackName
	}
	return name
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Close()
}
