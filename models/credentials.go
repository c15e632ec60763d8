package models

// Credentials is the session held by a client: the signed-in user and the
// bearer token that authorizes its calls. Both fields are always replaced
// together.
type Credentials struct {
	User        UserProfile `json:"user"`
	AccessToken string      `json:"accessToken"`
}

func (c *Credentials) Authenticated() bool {
	return c != nil && c.AccessToken != ""
}
