package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// InitLogger routes all status output to stderr so stdout stays usable
// for shell pipelines; the data file is the only other output.
func InitLogger() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})

	slog.SetDefault(slog.New(handler))
}
