package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// Resource API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the literal scheme prefix the Resource API guard checks for.
const BearerPrefix = "Bearer "
