package respond

// ChatListRespond is one row of the chat list, ordered by
// last_message_at descending.
type ChatListRespond struct {
	ChatId        string   `json:"chat_id"`
	Name          string   `json:"name"`
	Avatar        string   `json:"avatar"`
	IsGroup       bool     `json:"is_group"`
	LastMessage   string   `json:"last_message"`
	LastMessageAt string   `json:"last_message_at"`
	MemberIds     []string `json:"member_ids"`
}

// ChatMemberRespond is one participant in a chat detail view.
type ChatMemberRespond struct {
	Uuid     string `json:"uuid"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Status   string `json:"status"`
}

// ChatDetailRespond is the full view of one chat, members included.
type ChatDetailRespond struct {
	ChatId        string              `json:"chat_id"`
	Name          string              `json:"name"`
	Avatar        string              `json:"avatar"`
	IsGroup       bool                `json:"is_group"`
	OwnerId       string              `json:"owner_id"`
	LastMessage   string              `json:"last_message"`
	LastMessageAt string              `json:"last_message_at"`
	Members       []ChatMemberRespond `json:"members"`
}
