package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCommand    = "command"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyCommit     = "commit"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Command(name string) slog.Attr   { return slog.String(KeyCommand, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Commit(hash string) slog.Attr    { return slog.String(KeyCommit, hash) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
