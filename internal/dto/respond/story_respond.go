package respond

// StoryListRespond is one active story with its author overlay.
type StoryListRespond struct {
	StoryId   string `json:"story_id"`
	UserId    string `json:"user_id"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	MediaUrl  string `json:"media_url"`
	Caption   string `json:"caption"`
	CreatedAt string `json:"created_at"`
}
