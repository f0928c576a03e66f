package dto

// CheckInData is one mood share, with the guardian's comment when present.
type CheckInData struct {
	ID          string `json:"id"`
	PhotoURL    string `json:"photo_url"`
	Emotion     string `json:"emotion"`
	Comment     string `json:"comment,omitempty"`
	CommentedAt string `json:"commented_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// CommentCheckInRequest adds the guardian's comment to a check-in.
type CommentCheckInRequest struct {
	Comment string `json:"comment" binding:"required"`
}
