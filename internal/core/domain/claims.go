package domain

// SessionClaims is the decoded payload of a session token. It carries copied
// scalar fields only, never a live User reference, so tokens stay verifiable
// without a database round trip.
type SessionClaims struct {
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	Cadre     string `json:"cadre"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
