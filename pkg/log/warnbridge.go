package log

import (
	"os"

	"github.com/rs/zerolog"

	mlerrors "github.com/YuminosukeSato/mlboard/pkg/errors"
)

// SetupWarnLogger routes library warnings through zerolog. Warning
// types that implement zerolog.LogObjectMarshaler are logged with
// their structured fields; anything else falls back to the error field.
func SetupWarnLogger() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	mlerrors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev.EmbedObject(obj).Msg("algorithm warning")
			return
		}
		ev.Err(warning).Msg("algorithm warning")
	})
}
