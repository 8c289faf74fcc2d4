package imagepkg

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QR code side bounds in pixels.
const (
	MinQRSize     = 64
	MaxQRSize     = 1024
	DefaultQRSize = 256
)

// ErrQR wraps QR generation failures.
var ErrQR = errors.New("generate qr code")

// MatchLink expands the {id} placeholder of a match page template. The id is
// path-escaped.
func MatchLink(template, matchID string) string {
	return strings.ReplaceAll(template, "{id}", url.PathEscape(matchID))
}

// GenerateQRPNG returns PNG bytes of a QR code for text, size pixels square.
// Sizes are clamped to [MinQRSize, MaxQRSize].
func GenerateQRPNG(text string, size int) ([]byte, error) {
	size = min(max(size, MinQRSize), MaxQRSize)
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQR, err)
	}
	return b, nil
}
