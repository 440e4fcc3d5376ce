package sink

import (
	"context"

	"github.com/sirupsen/logrus"

	traceback "github.com/xgx-io/xgx-traceback"
)

// LogSink emits one log entry per error. The entry message is the headline;
// fields carry the frame count, the origin location, the metadata map under
// "metadata" and the full text rendering under "traceback".
type LogSink struct {
	log   *logrus.Entry
	level logrus.Level
}

// NewLogSink returns a LogSink writing to l at level. A nil l uses the
// standard logrus logger.
func NewLogSink(l *logrus.Entry, level logrus.Level) *LogSink {
	if l == nil {
		l = logrus.WithField("component", "traceback.sink.log")
	}
	return &LogSink{log: l, level: level}
}

// Handle logs err. It only fails when ctx is already done.
func (s *LogSink) Handle(ctx context.Context, err *traceback.Error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	fields := logrus.Fields{
		"frames":    err.Len(),
		"origin":    err.First().Location.String(),
		"traceback": err.RenderText(),
	}
	if meta := err.Metadata(); meta != nil {
		fields["metadata"] = meta
	}
	s.log.WithContext(ctx).WithFields(fields).Log(s.level, err.Error())
	return nil
}
