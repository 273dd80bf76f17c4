// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets the baseline security headers on every response,
// reader pages and admin API alike.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// No MIME sniffing; article pages serve exactly what they declare.
		h.Set("X-Content-Type-Options", "nosniff")

		// Same-origin framing only. News pages are a common clickjacking
		// target.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Legacy XSS filter off; it mangles inline article embeds.
		h.Set("X-XSS-Protection", "0")

		// Trim the Referer on cross-origin navigation from article links.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Opt readers out of interest cohort tracking.
		h.Set("Permissions-Policy", "interest-cohort=()")

		next.ServeHTTP(w, r)
	})
}
