package respond

// GetUserInfoRespond is the public profile view.
type GetUserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Status    string `json:"status"`
	JobTitle  string `json:"job_title"`
	Signature string `json:"signature"`
	CreatedAt string `json:"created_at"`
}
