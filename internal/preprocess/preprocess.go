package preprocess

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/wenyin0054/fundora-app-sub001/internal/utils"
)

// OpError represents a failure in a single preprocessing step.
type OpError struct {
	Operation string
	Err       error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("preprocess error in %s: %v", e.Operation, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Config holds preprocessing parameters.
type Config struct {
	// AnalysisWidth is the fixed target width of the small working copy used
	// for content-region analysis.
	AnalysisWidth int `mapstructure:"analysis_width" yaml:"analysis_width" json:"analysis_width"`
	// MinRegionPx rejects analysis copies or detected regions smaller than
	// this in either axis.
	MinRegionPx int `mapstructure:"min_region_px" yaml:"min_region_px" json:"min_region_px"`
	// MarginFrac is the per-side margin fraction excluded as background.
	MarginFrac float64 `mapstructure:"margin_frac" yaml:"margin_frac" json:"margin_frac"`
	// ExpandPx widens the mapped crop box by this many pixels on all sides.
	ExpandPx int `mapstructure:"expand_px" yaml:"expand_px" json:"expand_px"`
	// CacheDir overrides the scoped cache location for processed images.
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir" json:"cache_dir"`
	// InlineBytes controls whether the processed JPEG bytes are returned
	// inline alongside the cached file path.
	InlineBytes bool `mapstructure:"inline_bytes" yaml:"inline_bytes" json:"inline_bytes"`
	// JPEGQuality is the quality used when persisting processed images.
	JPEGQuality int `mapstructure:"jpeg_quality" yaml:"jpeg_quality" json:"jpeg_quality"`
}

// DefaultConfig returns preprocessing defaults.
func DefaultConfig() Config {
	return Config{
		AnalysisWidth: 500,
		MinRegionPx:   50,
		MarginFrac:    0.10,
		ExpandPx:      10,
		JPEGQuality:   90,
	}
}

// Validate checks config sanity.
func (c Config) Validate() error {
	if c.AnalysisWidth <= 0 {
		return errors.New("analysis_width must be positive")
	}
	if c.MinRegionPx <= 0 {
		return errors.New("min_region_px must be positive")
	}
	if c.MarginFrac < 0 || c.MarginFrac >= 0.5 {
		return errors.New("margin_frac must be in [0, 0.5)")
	}
	if c.ExpandPx < 0 {
		return errors.New("expand_px must not be negative")
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		return errors.New("jpeg_quality must be in (0, 100]")
	}
	return nil
}

// Processed is the output of a preprocessing run. Width and Height are always
// positive; Cropped reports whether the content-region crop was applied or
// the run degraded to an orientation-normalized, uncropped copy.
type Processed struct {
	Path    string
	Width   int
	Height  int
	Bytes   []byte
	Cropped bool
}

// Preprocessor isolates the receipt content region of a photograph.
type Preprocessor struct {
	cfg Config
}

// NewPreprocessor builds a preprocessor after validating cfg.
func NewPreprocessor(cfg Config) (*Preprocessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preprocess config: %w", err)
	}
	return &Preprocessor{cfg: cfg}, nil
}

// Preprocess normalizes orientation, detects the approximate content region
// on a downscaled working copy, maps the region back to full resolution,
// crops, and persists the result to the scoped cache.
//
// Every step degrades gracefully: a failed crop yields the uncropped,
// orientation-normalized copy rather than an error. Preprocess only returns
// an error when even that fallback cannot be produced (unreadable input);
// the caller then continues with the unmodified original.
func (p *Preprocessor) Preprocess(path string) (*Processed, error) {
	img, err := utils.LoadOriented(path)
	if err != nil {
		return nil, &OpError{Operation: "load", Err: err}
	}

	bounds := img.Bounds()
	normW, normH := bounds.Dx(), bounds.Dy()
	if normW <= 0 || normH <= 0 {
		return nil, &OpError{Operation: "load", Err: errors.New("zero pixel dimensions")}
	}

	cropped, ok := p.cropContentRegion(img, normW, normH)
	if !ok {
		slog.Debug("Content-region crop degraded to uncropped copy", "path", path)
		return p.persist(img, false)
	}
	out, err := p.persist(cropped, true)
	if err != nil {
		// Persisting the crop failed; the uncropped copy is still worth a try.
		slog.Warn("Failed to persist cropped image, falling back", "error", err)
		return p.persist(img, false)
	}
	return out, nil
}

// cropContentRegion runs the analysis downscale, fixed-margin region
// detection, and coordinate map-back. It reports ok=false whenever the
// heuristic cannot produce a usable crop.
func (p *Preprocessor) cropContentRegion(img image.Image, normW, normH int) (image.Image, bool) {
	small := imaging.Resize(img, p.cfg.AnalysisWidth, 0, imaging.Lanczos)
	sb := small.Bounds()
	smallW, smallH := sb.Dx(), sb.Dy()
	if smallW < p.cfg.MinRegionPx || smallH < p.cfg.MinRegionPx {
		return nil, false
	}

	region := ContentRegion(smallW, smallH, p.cfg.MarginFrac)
	if region.Dx() < p.cfg.MinRegionPx || region.Dy() < p.cfg.MinRegionPx {
		return nil, false
	}

	box := MapToOriginal(region, smallW, smallH, normW, normH, p.cfg.ExpandPx)
	if box.Empty() {
		return nil, false
	}

	cropped := imaging.Crop(img, box)
	cb := cropped.Bounds()
	if cb.Dx() <= 0 || cb.Dy() <= 0 {
		return nil, false
	}
	slog.Debug("Cropped content region",
		"crop_x", box.Min.X, "crop_y", box.Min.Y,
		"crop_w", box.Dx(), "crop_h", box.Dy(),
		"norm_w", normW, "norm_h", normH)
	return cropped, true
}

// persist writes img to the scoped cache with a unique name and assembles
// the Processed result.
func (p *Preprocessor) persist(img image.Image, croppedApplied bool) (*Processed, error) {
	dir, err := CacheDir(p.cfg.CacheDir)
	if err != nil {
		return nil, &OpError{Operation: "persist", Err: err}
	}
	dest := filepath.Join(dir, uniqueName("receipt", ".jpg"))
	if err := imaging.Save(img, dest, imaging.JPEGQuality(p.cfg.JPEGQuality)); err != nil {
		return nil, &OpError{Operation: "persist", Err: err}
	}

	b := img.Bounds()
	out := &Processed{
		Path:    dest,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Cropped: croppedApplied,
	}
	if p.cfg.InlineBytes {
		data, err := os.ReadFile(dest) //nolint:gosec // G304: path was just written by us
		if err != nil {
			return nil, &OpError{Operation: "persist", Err: err}
		}
		out.Bytes = data
	}
	return out, nil
}
