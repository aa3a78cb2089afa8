// Package imageref resolves image references into decoded images.
//
// A reference is one of:
//
//   - an inline data URL: "data:image/png;base64,iVBOR..."
//   - a remote URL: "https://example.com/cake.webp"
//   - a local path, optionally "file://" prefixed or starting with "~"
//
// PNG, JPEG, GIF, WebP, BMP and TIFF are decoded. FromFile and FromBytes
// turn raw file contents into data URLs, sniffing the MIME type from the
// content rather than the file name.
package imageref
