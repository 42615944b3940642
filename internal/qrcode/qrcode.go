package qrcode

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	goqrcode "github.com/skip2/go-qrcode"
	"github.com/vbonduro/planttracker/internal/imagestore"
)

const (
	// TokenLength is the number of hex characters in a pot token.
	TokenLength = 8
	// DefaultSize is the PNG edge length in pixels.
	DefaultSize = 370
	// PathPrefix is the URL path under which stored images are served.
	PathPrefix = "/qrcodes/"
)

var keyPattern = regexp.MustCompile(`^[0-9a-f]{8}\.png$`)

// NewToken returns a short opaque pot token: the first eight hex characters
// of a random UUID. Uniqueness is the caller's job.
func NewToken() string {
	return uuid.NewString()[:TokenLength]
}

// Key is the image store key for token.
func Key(token string) string {
	return token + ".png"
}

// IsKey reports whether name is a key Key could have produced for a token
// from NewToken.
func IsKey(name string) bool {
	return keyPattern.MatchString(name)
}

// Path is the public URL path of token's image.
func Path(token string) string {
	return PathPrefix + Key(token)
}

// Generator renders pot labels and keeps them in an image store.
type Generator struct {
	images  imagestore.Store
	baseURL string
	size    int
	logger  *slog.Logger
}

func NewGenerator(images imagestore.Store, baseURL string, logger *slog.Logger) *Generator {
	return &Generator{
		images:  images,
		baseURL: strings.TrimRight(baseURL, "/"),
		size:    DefaultSize,
		logger:  logger,
	}
}

// Content is the URL encoded into token's label. An empty baseURL falls back
// to the generator's configured one.
func (g *Generator) Content(token, baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = g.baseURL
	}
	return fmt.Sprintf("%s/pot/%s", base, token)
}

// Ensure makes sure an image exists for token. It reports whether a new
// image was written; an existing image is left untouched.
func (g *Generator) Ensure(ctx context.Context, token, baseURL string) (string, bool, error) {
	key := Key(token)

	exists, err := g.images.Exists(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to check qr image: %w", err)
	}
	if exists {
		return Path(token), false, nil
	}

	content := g.Content(token, baseURL)
	png, err := goqrcode.Encode(content, goqrcode.Medium, g.size)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode qr code: %w", err)
	}
	if err := g.images.Put(ctx, key, bytes.NewReader(png)); err != nil {
		return "", false, fmt.Errorf("failed to store qr image: %w", err)
	}

	g.logger.Info("qr image generated", "token", token, "content", content)
	return Path(token), true, nil
}
