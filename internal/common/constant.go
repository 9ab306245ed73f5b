// Package common contains shared constants and sentinel errors used across
// GopherShop components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key that
// carries the bearer access token on inbound requests.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the authentication scheme expected in the authorization
// header and returned as the token type from the login endpoint.
const BearerScheme = "bearer"

// SubjectClaim is the token claim holding the username of the caller.
const SubjectClaim = "sub"

// UserIDClaim is the token claim holding the numeric id of the caller. It
// ties a token to one account even if its username is later reused.
const UserIDClaim = "uid"

// ExpiryClaim is the reserved token claim holding the expiry instant.
const ExpiryClaim = "exp"
