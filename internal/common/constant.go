package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// Paths the route guard redirects to.
const (
	LoginPath        = "/login"
	AccountSetupPath = "/account-setup"
)
