package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	traceback "github.com/xgx-io/xgx-traceback"
)

// fileTimeLayout is the timestamp prefix of every file FileSink writes.
const fileTimeLayout = "2006-01-02.15-04-05"

// FileSink writes each error as a JSON document into its own file.
type FileSink struct {
	dir    string
	pretty bool
	clock  clock.PassiveClock
	newID  func() string
	log    *logrus.Entry
}

// FileOption configures a FileSink.
type FileOption func(*FileSink)

// WithFileClock sets the clock used for file names.
func WithFileClock(c clock.PassiveClock) FileOption {
	return func(s *FileSink) { s.clock = c }
}

// WithFileLogger sets the logger FileSink reports written files to.
func WithFileLogger(l *logrus.Entry) FileOption {
	return func(s *FileSink) { s.log = l }
}

// withIDFunc replaces uuid.NewString; tests use it for stable names.
func withIDFunc(f func() string) FileOption {
	return func(s *FileSink) { s.newID = f }
}

// NewFileSink returns a FileSink for cfg. An empty cfg.Dir falls back to
// "errors" relative to the working directory.
func NewFileSink(cfg Config, opts ...FileOption) *FileSink {
	s := &FileSink{
		dir:    cfg.Dir,
		pretty: cfg.Pretty,
		clock:  clock.RealClock{},
		newID:  uuid.NewString,
		log:    logrus.WithField("component", "traceback.sink.file"),
	}
	if s.dir == "" {
		s.dir = defaultDir
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dir returns the directory files are written to.
func (s *FileSink) Dir() string { return s.dir }

// Handle writes err to a new file.
func (s *FileSink) Handle(ctx context.Context, err *traceback.Error) error {
	_, werr := s.Write(ctx, err)
	return werr
}

// Write serializes err into a new file and returns its path. The file name is
// "<YYYY-MM-DD.HH-MM-SS>.<unix nanos>-<uuid>.json"; it appears atomically.
func (s *FileSink) Write(ctx context.Context, err *traceback.Error) (string, error) {
	if cerr := ctx.Err(); cerr != nil {
		return "", cerr
	}

	var (
		data []byte
		merr error
	)
	if s.pretty {
		data, merr = err.MarshalIndent("", "  ")
	} else {
		data, merr = err.MarshalJSON()
	}
	if merr != nil {
		return "", fmt.Errorf("encoding traceback: %w", merr)
	}

	if mkerr := os.MkdirAll(s.dir, 0o755); mkerr != nil {
		return "", fmt.Errorf("creating error directory: %w", mkerr)
	}

	path := filepath.Join(s.dir, s.fileName())
	tmp, cerr := os.CreateTemp(s.dir, ".traceback-*.tmp")
	if cerr != nil {
		return "", fmt.Errorf("creating error file: %w", cerr)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, werr := tmp.Write(append(data, '\n')); werr != nil {
		tmp.Close()
		return "", fmt.Errorf("writing error file: %w", werr)
	}
	if cerr := tmp.Close(); cerr != nil {
		return "", fmt.Errorf("closing error file: %w", cerr)
	}
	if rerr := os.Rename(tmp.Name(), path); rerr != nil {
		return "", fmt.Errorf("publishing error file: %w", rerr)
	}

	s.log.WithFields(logrus.Fields{
		"path":   path,
		"frames": err.Len(),
	}).Debug("traceback written")
	return path, nil
}

func (s *FileSink) fileName() string {
	now := s.clock.Now().UTC()
	return now.Format(fileTimeLayout) + "." + strconv.FormatInt(now.UnixNano(), 10) + "-" + s.newID() + ".json"
}
