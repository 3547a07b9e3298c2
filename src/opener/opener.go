// Package opener hands URLs to the desktop's default handler.
package opener

import (
	"fmt"
	"io"
	"net/url"

	"github.com/pkg/browser"
)

func init() {
	// keep the handler's chatter out of our stdout
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// OpenFunc opens a URL with the default handler.
type OpenFunc func(rawURL string) error

// Open validates rawURL and opens it with open, or pkg/browser when nil.
func Open(rawURL string, open OpenFunc) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid settings URL %q", rawURL)
	}
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(u.String()); err != nil {
		return fmt.Errorf("failed to open settings URL: %w", err)
	}
	return nil
}
