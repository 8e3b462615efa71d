package request

// UpdateUserInfoRequest updates the caller's profile. Empty fields are
// left untouched.
type UpdateUserInfoRequest struct {
	Uuid      string `json:"uuid" binding:"required"`
	Avatar    string `json:"avatar" binding:"max=255"`
	JobTitle  string `json:"job_title" binding:"max=50"`
	Signature string `json:"signature" binding:"max=100"`
	Status    string `json:"status" binding:"max=10"`
}

// UpdateStatusRequest sets the caller's presence value.
type UpdateStatusRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// SearchUsersRequest looks up users by username substring.
type SearchUsersRequest struct {
	OwnerId string `form:"owner_id" binding:"required"`
	Term    string `form:"term" binding:"required,min=1"`
}

// WsLogoutRequest tears down the caller's realtime connection.
type WsLogoutRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
}
