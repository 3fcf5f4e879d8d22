package ratelimit

import (
	"net/http"
	"strings"
)

// ClientIP extracts the caller's address from proxy headers: the first
// x-forwarded-for entry wins, then x-real-ip, then the literal "unknown".
// No syntax validation; behind a trusted proxy the headers are authoritative.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}
	return "unknown"
}
