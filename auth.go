package chapa

import "net/http"

// authorize attaches the bearer credential to an outgoing request. The
// secret key travels only in this header, never in a request body.
func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
}

// MaskKey redacts an API key for display, keeping the identifying prefix
// visible. Safe to use in logs.
func MaskKey(key string) string {
	if len(key) <= 12 {
		return "****"
	}
	return key[:12] + "****"
}
