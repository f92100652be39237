package common

// DefaultSessionCookieName is the cookie that carries the signed session token
// between the browser and the API.
const DefaultSessionCookieName = "jwt"

// AuthorizationHeaderName is the fallback transport for the session token,
// used as "Authorization: Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed back on every response so log lines can be
// correlated with client reports.
const RequestIDHeaderName = "X-Request-ID"
