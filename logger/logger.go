package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New builds the service logger writing to stdout and, when logDir is
// non-empty, to a server.log file in that directory.
func New(logDir string) zerolog.Logger {
	var w io.Writer = os.Stdout

	if logDir != "" {
		if err := os.MkdirAll(logDir, os.ModePerm); err == nil {
			file, err := os.OpenFile(filepath.Join(logDir, "server.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err == nil {
				w = zerolog.MultiLevelWriter(os.Stdout, file)
			}
		}
	}

	return zerolog.New(w).With().Timestamp().Logger()
}
