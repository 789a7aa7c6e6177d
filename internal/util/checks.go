package util

import (
	"fmt"
	"net/url"
	"strings"
)

// IsURL reports whether str is an absolute URL with a host,
// e.g.: "https://www.viber.com".
func IsURL(str string) bool {
	if str == "" || strings.TrimSpace(str) != str {
		return false
	}
	link, err := url.ParseRequestURI(str)
	if err != nil {
		return false
	}
	return link.Scheme != "" && link.Host != ""
}

// JoinURL of the API base URL and the method name,
// e.g.: "https://chatapi.viber.com/pa/" + "send_message".
// The base must be an absolute URL; its query, if any, is kept.
func JoinURL(base, method string) (string, error) {
	link, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", err
	}
	if link.Scheme == "" || link.Host == "" {
		return "", fmt.Errorf("base URL %q: absolute URL required", base)
	}
	method = strings.Trim(method, "/")
	link.Path = strings.TrimRight(link.Path, "/") + "/" + method
	link.RawPath = ""
	return link.String(), nil
}
