package respond

// GetMessageListRespond is one message in chat history and also the
// realtime message event payload. Id is the snowflake id in decimal
// string form to survive JSON number precision.
type GetMessageListRespond struct {
	Id          string `json:"id"`
	ChatId      string `json:"chat_id"`
	SendId      string `json:"send_id"`
	SendName    string `json:"send_name"`
	SendAvatar  string `json:"send_avatar"`
	Type        int8   `json:"type"`
	Content     string `json:"content"`
	Url         string `json:"url"`
	FileType    string `json:"file_type"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	ClientMsgId string `json:"client_msg_id,omitempty"`
	AIGenerated bool   `json:"ai_generated"`
	Status      int8   `json:"status"`
	CreatedAt   string `json:"created_at"`
}
