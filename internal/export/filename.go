package export

import (
	"time"

	"github.com/gosimple/slug"
)

// Formats accepted by FileName.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// FileName returns the download name for an export taken at now, e.g.
// expenses-2026-10-19.csv, prefixed by the slugified label when one is set.
func FileName(format, label string, now time.Time) string {
	name := "expenses-" + now.Format("2006-01-02") + "." + format
	if s := slug.Make(label); s != "" {
		name = s + "-" + name
	}
	return name
}
