package request

// CreateStoryRequest posts a story.
type CreateStoryRequest struct {
	OwnerId  string `json:"owner_id" binding:"required"`
	MediaUrl string `json:"media_url" binding:"required,max=255"`
	Caption  string `json:"caption" binding:"max=200"`
}

// DeleteStoryRequest removes the caller's own story.
type DeleteStoryRequest struct {
	OwnerId string `json:"owner_id" binding:"required"`
	StoryId string `json:"story_id" binding:"required"`
}
