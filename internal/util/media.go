package util

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// FileName extracts the last path segment of the given URL,
// e.g.: "https://example.com/media/report%202024.pdf" => "report 2024.pdf".
// Returns "" if there is no file name segment.
func FileName(rawURL string) string {
	link, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	name := path.Base(link.Path)
	switch name {
	case ".", "/":
		return ""
	}
	return name
}

var sizeUnits = [...]string{"KB", "MB", "GB"}

// FormatBytes of the media file size, e.g.: 1536 => "1.5 KB".
func FormatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return strconv.FormatInt(size, 10) + " B"
	}
	value, exp := float64(size)/unit, 0
	for value >= unit && exp < len(sizeUnits)-1 {
		value /= unit
		exp++
	}
	return strconv.FormatFloat(value, 'f', 1, 64) + " " + sizeUnits[exp]
}
