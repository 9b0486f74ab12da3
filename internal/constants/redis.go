package constants

// Redis keys
const (
	// RedisKeyRevokedTokenPrefix is followed by the token's jti.
	RedisKeyRevokedTokenPrefix = "auth:revoked:"
)
