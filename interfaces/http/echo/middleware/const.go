package middleware

const (
	Authorization     = "Authorization"
	TokenKey          = "requestToken"
	JWTSessionKey     = "jwtSession"
	RefreshCookieName = "refreshToken"
)
