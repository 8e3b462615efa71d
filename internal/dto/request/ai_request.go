package request

// SuggestRepliesRequest asks for reply suggestions for a chat's recent
// history.
type SuggestRepliesRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	ChatId  string `json:"chat_id" binding:"required"`
}

// TranslateRequest translates a message text.
type TranslateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"target_lang" binding:"required,min=2,max=20"`
}

// SummarizeRequest asks for a summary of a chat's recent history.
type SummarizeRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	ChatId  string `json:"chat_id" binding:"required"`
}
