package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeySite       = "site"
	KeyConfig     = "config_path"
	KeyPagesDir   = "pages_dir"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyTitle      = "title"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Site(dir string) slog.Attr       { return slog.String(KeySite, dir) }
func ConfigPath(p string) slog.Attr   { return slog.String(KeyConfig, p) }
func PagesDir(dir string) slog.Attr   { return slog.String(KeyPagesDir, dir) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
