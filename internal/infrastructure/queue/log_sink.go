package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// LogSink writes activity events to the structured log. It stands in for the
// Mongo audit store when none is configured.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) InsertActivity(_ context.Context, e domain.ActivityEvent) error {
	s.log.Info().
		Str("kind", string(e.Kind)).
		Str("job_id", e.JobID).
		Str("user_id", e.UserID).
		Str("status", string(e.Status)).
		Int64("delta", e.Delta).
		Time("timestamp", e.Timestamp).
		Msg("activity")
	return nil
}
