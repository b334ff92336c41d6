package models

// AuthClaim is the identity asserted by an issued token. It has no expiry.
type AuthClaim struct {
	TenantID string `json:"tenantId"`
	Username string `json:"username"`
}

// AuthenticateResponse is returned by a successful authentication.
type AuthenticateResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}
