package encoding

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"movpress/internal/preset"
	"movpress/internal/services"
)

// Codec identifiers accepted from users, mapped to ffmpeg encoder names.
const (
	CodecH264 = "h264"
	CodecH265 = "h265"

	encoderH264 = "libx264"
	encoderH265 = "libx265"
)

// Audio is always transcoded to AAC at a fixed bitrate; screen recordings
// carry negligible audio and the container switches to MP4.
const (
	audioCodec   = "aac"
	audioBitrate = "128k"
)

const outputSuffix = "_compressed"

var scalePattern = regexp.MustCompile(`^([1-9][0-9]*):([1-9][0-9]*|-2)$`)

// Plan is the canonical, ordered parameter set for one encoder invocation.
// It is produced entirely before any process is spawned.
type Plan struct {
	InputPath  string
	OutputPath string
	PresetName string
	CRF        int
	Speed      string
	Scale      string
	FPS        int
	Encoder    string
}

// Args renders the ffmpeg argument list in canonical order.
func (p Plan) Args() []string {
	args := []string{
		"-hide_banner", "-nostdin",
		"-i", p.InputPath,
		"-c:v", p.Encoder,
		"-crf", strconv.Itoa(p.CRF),
		"-preset", p.Speed,
	}
	if p.Scale != "" {
		args = append(args, "-vf", "scale="+p.Scale)
	}
	if p.FPS > 0 {
		args = append(args, "-r", strconv.Itoa(p.FPS))
	}
	args = append(args, "-c:a", audioCodec, "-b:a", audioBitrate, "-y", p.OutputPath)
	return args
}

// Resolve turns a request into a Plan. Explicit overrides always take
// precedence over preset defaults; with no preset and no overrides the
// result equals the Medium preset exactly. Resolve is pure: it touches no
// files and spawns nothing.
func Resolve(req Request) (Plan, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return Plan{}, services.Wrap(services.ErrMissingInput, "resolver", "resolve", "input path is required", nil)
	}

	name := strings.ToLower(strings.TrimSpace(req.Preset))
	if name == "" {
		name = preset.DefaultName
	}
	base, ok := preset.Lookup(name)
	if !ok {
		return Plan{}, services.Field("preset", fmt.Sprintf("unknown preset %q (expected one of %s)", req.Preset, strings.Join(preset.Names(), ", ")))
	}

	plan := Plan{
		InputPath:  input,
		PresetName: base.Name,
		CRF:        base.CRF,
		Speed:      base.Speed,
		Scale:      base.Scale,
	}

	if req.CRF != nil {
		if *req.CRF < 0 || *req.CRF > 51 {
			return Plan{}, services.Field("crf", fmt.Sprintf("value %d out of range [0,51]", *req.CRF))
		}
		plan.CRF = *req.CRF
	}

	// An explicit scale is authoritative, including over Web's implicit
	// 720p target.
	if scale := strings.TrimSpace(req.Scale); scale != "" {
		if !scalePattern.MatchString(scale) {
			return Plan{}, services.Field("scale", fmt.Sprintf("malformed value %q (expected WIDTH:HEIGHT, height may be -2)", req.Scale))
		}
		plan.Scale = scale
	}

	if req.FPS != 0 {
		if req.FPS < 0 {
			return Plan{}, services.Field("fps", fmt.Sprintf("value %d must be positive", req.FPS))
		}
		plan.FPS = req.FPS
	}

	switch strings.ToLower(strings.TrimSpace(req.Codec)) {
	case "", CodecH264:
		plan.Encoder = encoderH264
	case CodecH265:
		plan.Encoder = encoderH265
	default:
		return Plan{}, services.Field("codec", fmt.Sprintf("unknown codec %q (expected %s or %s)", req.Codec, CodecH264, CodecH265))
	}

	if output := strings.TrimSpace(req.Output); output != "" {
		plan.OutputPath = output
	} else {
		plan.OutputPath = DeriveOutputPath(input)
	}

	return plan, nil
}

// DeriveOutputPath builds the default output path: the input filename with
// its extension replaced by .mp4 and a "_compressed" suffix.
func DeriveOutputPath(input string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+outputSuffix+".mp4")
}
