package utils

import (
	"io"
	"log/slog"
)

// CloseWithLog closes c and logs a warning on failure. Intended for use in
// defer statements where the close error cannot override the primary error.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close resource", "error", err.Error())
	}
}
