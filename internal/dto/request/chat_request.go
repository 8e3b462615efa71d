package request

// CreateChatRequest creates a group chat with an initial member list.
// The owner is always included.
type CreateChatRequest struct {
	OwnerId   string   `json:"owner_id" binding:"required"`
	Name      string   `json:"name" binding:"required,max=30"`
	Avatar    string   `json:"avatar" binding:"max=255"`
	MemberIds []string `json:"member_ids" binding:"required,min=1"`
}

// OpenDirectChatRequest finds or creates the direct chat with a peer.
type OpenDirectChatRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	PeerId  string `json:"peer_id" binding:"required"`
}

// LeaveChatRequest removes the caller from a chat.
type LeaveChatRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	ChatId  string `json:"chat_id" binding:"required"`
}

// GetChatListRequest lists the caller's chats.
type GetChatListRequest struct {
	OwnerId string `form:"owner_id" binding:"required"`
}
