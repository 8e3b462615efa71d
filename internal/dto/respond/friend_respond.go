package respond

// FriendListRespond is one row of the contact list.
type FriendListRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Status   string `json:"status"`
	JobTitle string `json:"job_title"`
}
