package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

// DefaultMaxEdge caps the longest edge of stored images. Marketing pages never
// render anything wider than a 4K viewport.
const DefaultMaxEdge = 3840

const (
	jpegQuality = 3
	pngLevel    = 4
	webpQuality = 85
)

// Image is raw upload bytes plus enough metadata to pick an output codec.
type Image struct {
	Data        []byte
	FileName    string
	ContentType string
}

// Optimized is the processed image ready for object storage.
type Optimized struct {
	Data        []byte
	ContentType string
	Resized     bool
}

// Processor shrinks oversized images before they are stored.
type Processor interface {
	Optimize(ctx context.Context, img Image) (*Optimized, error)
}

// FFMPEGProcessor resizes images by piping them through an ffmpeg binary.
// Images already within the max edge pass through untouched.
type FFMPEGProcessor struct {
	binary  string
	maxEdge int
}

func NewFFMPEGProcessor(binaryPath string, maxEdge int) *FFMPEGProcessor {
	binary := strings.TrimSpace(binaryPath)
	if binary == "" {
		binary = "ffmpeg"
	}
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	return &FFMPEGProcessor{binary: binary, maxEdge: maxEdge}
}

func (p *FFMPEGProcessor) Optimize(ctx context.Context, img Image) (*Optimized, error) {
	if len(img.Data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	contentType := DetectContentType(img.ContentType, img.FileName)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("media: decode dimensions: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("media: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width <= p.maxEdge && cfg.Height <= p.maxEdge {
		return &Optimized{Data: img.Data, ContentType: contentType, Resized: false}, nil
	}

	width, height := fitWithin(cfg.Width, cfg.Height, p.maxEdge)
	resized, err := p.transcode(ctx, img.Data, contentType, width, height)
	if err != nil {
		return nil, err
	}
	return &Optimized{Data: resized, ContentType: contentType, Resized: true}, nil
}

// fitWithin scales width x height down so the longest edge equals maxEdge,
// preserving aspect ratio. ffmpeg rejects odd sub-2 dimensions.
func fitWithin(width, height, maxEdge int) (int, int) {
	scale := float64(maxEdge) / float64(max(width, height))
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	return max(w, 2), max(h, 2)
}

func (p *FFMPEGProcessor) transcode(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	codec, codecArgs, err := codecFor(contentType)
	if err != nil {
		return nil, err
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", width, height),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	args = append(args, codecArgs...)
	args = append(args, "pipe:1")

	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	out := stdout.Bytes()
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return out, nil
}

func codecFor(contentType string) (string, []string, error) {
	switch contentType {
	case "image/jpeg":
		return "mjpeg", []string{"-q:v", strconv.Itoa(jpegQuality)}, nil
	case "image/png":
		return "png", []string{"-compression_level", strconv.Itoa(pngLevel)}, nil
	case "image/webp":
		return "libwebp", []string{"-quality", strconv.Itoa(webpQuality)}, nil
	default:
		return "", nil, fmt.Errorf("media: unsupported content type %s", contentType)
	}
}

// DetectContentType normalizes the declared content type, falling back to the
// file extension. Browsers occasionally send image/jpg.
func DetectContentType(declared, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(declared))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" {
		return ct
	}
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		if ext != "" {
			if mt := mime.TypeByExtension(ext); mt != "" {
				return strings.ToLower(mt)
			}
		}
	}
	return "image/jpeg"
}
