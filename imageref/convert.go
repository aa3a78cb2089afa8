package imageref

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
)

// FromBytes returns data as an inline "data:<mime>;base64," reference.
// The MIME type is sniffed from the content. Non-image content, or an
// image format no registered decoder reads (HEIF, PSD, ICO), returns
// ErrNotImage.
func FromBytes(data []byte) (string, error) {
	if !filetype.IsImage(data) {
		return "", ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return "", fmt.Errorf("imageref: sniff type: %w", err)
	}
	if !decodable[kind.MIME.Value] {
		return "", fmt.Errorf("%w: %s", ErrNotImage, kind.MIME.Value)
	}
	return "data:" + kind.MIME.Value + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// FromFile reads the file at path and converts it with FromBytes.
func FromFile(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("imageref: expand %q: %w", path, err)
	}
	data, err := os.ReadFile(p) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return "", fmt.Errorf("imageref: read %s: %w", p, err)
	}
	ref, err := FromBytes(data)
	if err != nil {
		return "", fmt.Errorf("imageref: %s: %w", p, err)
	}
	return ref, nil
}
