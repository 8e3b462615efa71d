package request

// AddFriendRequest creates a symmetric friendship.
type AddFriendRequest struct {
	OwnerId  string `json:"owner_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
}

// DeleteFriendRequest removes both directions of a friendship.
type DeleteFriendRequest struct {
	OwnerId  string `json:"owner_id" binding:"required"`
	FriendId string `json:"friend_id" binding:"required"`
}
