package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/gallery"
)

// Ensure LoggingAddressBar implements gallery.AddressBar.
var _ gallery.AddressBar = (*LoggingAddressBar)(nil)

// LoggingAddressBar wraps an AddressBar with logging of writes and
// external navigations.
type LoggingAddressBar struct {
	next   gallery.AddressBar
	logger *slog.Logger
}

// NewLoggingAddressBar creates a new LoggingAddressBar.
func NewLoggingAddressBar(next gallery.AddressBar, logger *slog.Logger) *LoggingAddressBar {
	return &LoggingAddressBar{next: next, logger: logger}
}

// Location delegates to the wrapped address bar.
func (b *LoggingAddressBar) Location() string {
	return b.next.Location()
}

// Write delegates to the wrapped address bar and logs the write.
func (b *LoggingAddressBar) Write(rawQuery string, mode gallery.WriteMode) (err error) {
	defer func(begin time.Time) {
		b.logger.Debug("location write",
			"location", rawQuery,
			"mode", mode.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Write(rawQuery, mode)
}

// Subscribe registers fn and logs each navigation delivered to it.
func (b *LoggingAddressBar) Subscribe(fn func(rawQuery string)) func() {
	return b.next.Subscribe(func(rawQuery string) {
		b.logger.Debug("location change", "location", rawQuery)
		fn(rawQuery)
	})
}
