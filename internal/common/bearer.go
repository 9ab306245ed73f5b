package common

import "strings"

// BearerToken extracts the credential from an authorization header value of
// the form "Bearer <token>". The scheme is matched case-insensitively;
// anything else yields "".
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
