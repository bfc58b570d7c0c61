package zblob

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/andybalholm/brotli"
)

// Compression settings match the pflow.dev sharing format.
const (
	brotliQuality = 5
	brotliWindow  = 22
)

// CompressBrotliEncode compresses data with brotli and encodes the
// result in standard base64.
func CompressBrotliEncode(data string) (string, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterOptions(&buf, brotli.WriterOptions{
		Quality: brotliQuality,
		LGWin:   brotliWindow,
	})
	if _, err := w.Write([]byte(data)); err != nil {
		return "", fmt.Errorf("compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("compress: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecompressBrotliDecode reverses CompressBrotliEncode.
func DecompressBrotliDecode(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(decoded)))
	if err != nil {
		return "", fmt.Errorf("decompress: %w", err)
	}
	return string(out), nil
}

// DecodeURL extracts and decompresses the z query parameter from a
// share link like https://pflow.dev/?z=<blob>.
func DecodeURL(shareURL string) (string, error) {
	u, err := url.Parse(shareURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	z := u.Query().Get("z")
	if z == "" {
		return "", fmt.Errorf("no z parameter in %q", shareURL)
	}
	// Query decoding turns + back into space; undo it.
	z = strings.ReplaceAll(z, " ", "+")
	return DecompressBrotliDecode(z)
}
