package respond

// LoginRespond is returned by login and register.
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	JobTitle     string `json:"job_title"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRespond carries the renewed access token.
type RefreshTokenRespond struct {
	AccessToken string `json:"access_token"`
}
