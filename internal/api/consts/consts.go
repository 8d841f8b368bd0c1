package consts

// Redis key prefixes.
const (
	// UserTokenKey holds the active session token per user; deleting it
	// revokes the session immediately.
	UserTokenKey = "user:token:"

	// UserInfoKey caches the user profile JSON.
	UserInfoKey = "user:info:"
)
