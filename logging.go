package standings

import (
	"io"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

func logColors(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if !isatty.IsTerminal(f.Fd()) {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

func GetSlogHandler(debug bool, out io.Writer) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return tint.NewHandler(out, &tint.Options{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if _, ok := attr.Value.Any().(error); attr.Key == "err" || ok {
				return tint.Attr(9, attr)
			}
			return attr
		},
		TimeFormat: time.RFC3339,
		NoColor:    !logColors(out),
	})
}

// InitLogger sets the process-wide logger: tinted console output,
// optionally fanned out to a rotated file under logDir.
func InitLogger(debug bool, logDir string) error {
	handler := GetSlogHandler(debug, os.Stdout)

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return err
		}
		fileOut := &lumberjack.Logger{
			Filename:   path.Join(logDir, "standings.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 5,
		}
		handler = slogmulti.Fanout(
			handler,
			GetSlogHandler(debug, fileOut),
		)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
