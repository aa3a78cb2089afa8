package imageref

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Errors returned while parsing and loading references.
var (
	ErrEmptyRef   = errors.New("imageref: empty reference")
	ErrBadDataURL = errors.New("imageref: malformed data URL")
	ErrNotImage   = errors.New("imageref: content is not a supported image")
	ErrNotFound   = errors.New("imageref: image not found")
)

// Kind classifies a reference.
type Kind uint8

// Reference kinds.
const (
	KindData Kind = iota + 1
	KindURL
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindURL:
		return "url"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Ref is a parsed image reference.
type Ref struct {
	Kind Kind

	// MediaType and Data are set for KindData.
	MediaType string
	Data      []byte

	// URL is set for KindURL.
	URL string

	// Path is set for KindFile, with "~" already expanded.
	Path string
}

// Parse classifies and decodes ref. Data URLs are decoded eagerly; URLs and
// paths are only validated.
func Parse(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Ref{}, ErrEmptyRef
	}

	switch {
	case hasPrefixFold(ref, "data:"):
		return parseDataURL(ref)
	case hasPrefixFold(ref, "http://"), hasPrefixFold(ref, "https://"):
		u, err := url.Parse(ref)
		if err != nil {
			return Ref{}, fmt.Errorf("imageref: parse url: %w", err)
		}
		return Ref{Kind: KindURL, URL: u.String()}, nil
	case hasPrefixFold(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return Ref{}, fmt.Errorf("imageref: parse file url: %w", err)
		}
		return Ref{Kind: KindFile, Path: u.Path}, nil
	default:
		p, err := homedir.Expand(ref)
		if err != nil {
			return Ref{}, fmt.Errorf("imageref: expand %q: %w", ref, err)
		}
		return Ref{Kind: KindFile, Path: p}, nil
	}
}

// parseDataURL decodes "data:[<mediatype>][;base64],<data>".
func parseDataURL(ref string) (Ref, error) {
	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return Ref{}, ErrBadDataURL
	}

	isBase64 := false
	if m, found := strings.CutSuffix(meta, ";base64"); found {
		meta, isBase64 = m, true
	}
	mediaType := meta
	if mediaType == "" {
		mediaType = "text/plain;charset=US-ASCII"
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// Some producers strip the padding.
			d, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return Ref{}, fmt.Errorf("%w: %v", ErrBadDataURL, err)
			}
		}
		data = d
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return Ref{}, fmt.Errorf("%w: %v", ErrBadDataURL, err)
		}
		data = []byte(s)
	}
	return Ref{Kind: KindData, MediaType: mediaType, Data: data}, nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
