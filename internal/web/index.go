package web

import (
	_ "embed"
	"html/template"
	"net/http"

	"movpress/internal/logging"
	"movpress/internal/preset"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Presets       []preset.Preset
	DefaultPreset string
	DefaultCodec  string
	MaxUploadMiB  int
}

func (s *Server) renderIndex(w http.ResponseWriter) {
	data := indexData{
		Presets:       preset.List(),
		DefaultPreset: s.cfg.Encoder.DefaultPreset,
		DefaultCodec:  s.cfg.Encoder.DefaultCodec,
		MaxUploadMiB:  s.cfg.Web.MaxUploadMiB,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Warn("render index", logging.Error(err))
	}
}
