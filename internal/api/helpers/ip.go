package helpers

import (
	"net"
	"net/http"
	"strings"
)

// GetRealIP returns the client IP without its port. Forwarded headers win
// over RemoteAddr; the fixture is expected to run behind trusted proxies only.
func GetRealIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, p := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(p)); ip != nil {
				return ip
			}
		}
	}

	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		if ip := net.ParseIP(host); ip != nil {
			return ip
		}
	}

	return net.ParseIP(r.RemoteAddr)
}
