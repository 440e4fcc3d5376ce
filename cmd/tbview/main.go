// Command tbview prints traceback files written by the file sink.
//
//	tbview errors/                      # every file in the directory, oldest first
//	tbview --latest errors/             # only the newest
//	tbview -o yaml errors/2024-*.json   # re-encode as YAML
package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		log.WithError(err).Error("invalid arguments")
		return 2
	}
	configureLogging(opts.LogLevel, stderr)

	files, err := collect(opts.Paths, opts.Latest)
	if err != nil {
		log.WithError(err).Error("listing traceback files")
		return 1
	}

	status := 0
	for i, path := range files {
		e, err := load(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Error("reading traceback")
			status = 1
			continue
		}
		if i > 0 && opts.Output == outputText {
			_, _ = io.WriteString(stdout, "\n")
		}
		if err := render(stdout, e, opts.Output); err != nil {
			log.WithError(err).WithField("path", path).Error("rendering traceback")
			status = 1
		}
	}
	return status
}

// configureLogging sets the logrus level from the flag, then LOG_LEVEL, then
// "info".
func configureLogging(flagLevel string, out io.Writer) {
	log.SetOutput(out)
	levelFlag := flagLevel
	if levelFlag == "" {
		levelFlag = os.Getenv("LOG_LEVEL")
	}
	if levelFlag == "" {
		levelFlag = "info"
	}
	level, err := log.ParseLevel(levelFlag)
	if err != nil {
		log.Warnf("could not parse log level %q, using info", levelFlag)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
