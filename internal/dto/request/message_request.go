package request

// ChatMessageRequest is the send-message wire payload, received over
// the socket and carried through the broker. ClientMsgId is chosen by
// the sender for its optimistic local copy; the server echoes it back
// unchanged so the client can reconcile.
type ChatMessageRequest struct {
	Event       string `json:"event"`
	ClientMsgId string `json:"client_msg_id"`
	ChatId      string `json:"chat_id"`
	Type        int8   `json:"type"`
	Content     string `json:"content"`
	Url         string `json:"url"`
	FileType    string `json:"file_type"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	SendId      string `json:"send_id"`
	SendName    string `json:"send_name"`
	SendAvatar  string `json:"send_avatar"`
	AIGenerated bool   `json:"ai_generated"`
}

// TypingRequest is the typing-start/typing-stop wire payload.
type TypingRequest struct {
	Event  string `json:"event"`
	ChatId string `json:"chat_id"`
	SendId string `json:"send_id"`
}

// StatusUpdateRequest is the update-status wire payload.
type StatusUpdateRequest struct {
	Event  string `json:"event"`
	SendId string `json:"send_id"`
	Status string `json:"status"`
}

// ReadReceiptRequest is the read-receipt wire payload.
type ReadReceiptRequest struct {
	Event    string `json:"event"`
	ChatId   string `json:"chat_id"`
	ReaderId string `json:"reader_id"`
}

// GetMessageListRequest fetches chat history.
type GetMessageListRequest struct {
	OwnerId string `form:"owner_id" binding:"required"`
	ChatId  string `form:"chat_id" binding:"required"`
}

// MarkReadRequest advances message status for a chat.
type MarkReadRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	ChatId  string `json:"chat_id" binding:"required"`
}
