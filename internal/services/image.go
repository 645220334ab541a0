package services

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"path"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/Thejackcode565/Wish-A-Day/internal/storage"
	"github.com/google/uuid"
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Every accepted upload is re-encoded to JPEG at this quality, so storage
// cost and served format stay uniform regardless of input.
const jpegQuality = 85

const sizeProbeChunk = 32 * 1024

// ImageService validates, normalizes and stores uploaded images. It is
// stateless per call; the per-wish image ceiling is enforced by the caller.
type ImageService struct {
	files       storage.FileStore
	maxFileSize int64
}

func NewImageService(files storage.FileStore, maxFileSize int64) *ImageService {
	return &ImageService{
		files:       files,
		maxFileSize: maxFileSize,
	}
}

// Validate checks content type, extension and size. The body is scanned in
// bounded chunks and the scan aborts as soon as the ceiling is exceeded; the
// stream is rewound before returning either way, so a later read sees the
// full content.
func (s *ImageService) Validate(file io.ReadSeeker, filename, contentType string) error {
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: invalid content type %q", ErrValidation, contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: invalid file extension %q", ErrValidation, ext)
	}

	buf := make([]byte, sizeProbeChunk)
	var total int64
	for {
		n, err := file.Read(buf)
		total += int64(n)
		if total > s.maxFileSize {
			if _, serr := file.Seek(0, io.SeekStart); serr != nil {
				return fmt.Errorf("failed to rewind upload: %v", serr)
			}
			return fmt.Errorf("%w: maximum size is %dMB", ErrPayloadTooLarge, s.maxFileSize/1024/1024)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read upload: %v", err)
		}
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind upload: %v", err)
	}
	return nil
}

// Process decodes the upload, flattens palette/alpha modes to plain RGB,
// re-encodes to JPEG and writes it under the wish's storage subdirectory.
// The returned path is relative to the storage root.
func (s *ImageService) Process(file io.Reader, filename, wishID string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open image: %v", ErrProcessing, err)
	}

	img = flatten(img)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("%w: failed to encode image: %v", ErrProcessing, err)
	}

	name := fmt.Sprintf("%s_%s.jpg", slugifyFilename(filename), uuid.NewString()[:8])
	relPath := path.Join("wishes", wishID, name)

	if err := s.files.Write(relPath, out.Bytes()); err != nil {
		return "", fmt.Errorf("failed to save image: %v", err)
	}

	return relPath, nil
}

// Delete removes an image file, best effort. Missing files and I/O errors
// both report false; the owning record is being removed regardless.
func (s *ImageService) Delete(relPath string) bool {
	if err := s.files.Delete(relPath); err != nil {
		return false
	}
	return true
}

// flatten copies palette and alpha-channel images onto a plain RGB canvas;
// the JPEG encoder has no use for either.
func flatten(img image.Image) image.Image {
	switch img.(type) {
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return img
	}
	b := img.Bounds()
	rgb := image.NewRGBA(b)
	draw.Draw(rgb, b, img, b.Min, draw.Src)
	return rgb
}

// slugifyFilename keeps alphanumerics, hyphens and underscores from the
// filename stem and replaces everything else with an underscore.
func slugifyFilename(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if stem == "" {
		stem = "image"
	}
	var sb strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
