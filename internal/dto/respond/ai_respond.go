package respond

// SuggestRepliesRespond carries generated reply candidates.
type SuggestRepliesRespond struct {
	Suggestions []string `json:"suggestions"`
}

// TranslateRespond carries the translated text.
type TranslateRespond struct {
	Text string `json:"text"`
}

// SummarizeRespond carries the conversation summary.
type SummarizeRespond struct {
	Summary string `json:"summary"`
}
