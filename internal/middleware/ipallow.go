// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// IPAllowlist restricts the wrapped handlers to a fixed set of client
// addresses. Requests from any other address get a 403 JSON response.
// The resolved address comes from clientIP, so the allow-list works
// behind a reverse proxy that sets X-Forwarded-For.
func IPAllowlist(allowed []string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, ip := range allowed {
		allowedSet[normalizeIP(ip)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := normalizeIP(clientIP(r))
			if !allowedSet[ip] {
				slog.Warn("admin access denied", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Access denied. Admin access only.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// normalizeIP strips the IPv4-mapped IPv6 prefix so "::ffff:127.0.0.1"
// and "127.0.0.1" compare equal.
func normalizeIP(ip string) string {
	return strings.TrimPrefix(ip, "::ffff:")
}
