package model

// UpdatePostDTO carries the columns to overwrite; nil fields are left as stored.
type UpdatePostDTO struct {
	Likes  *int32      `json:"likes,omitempty"`
	Status *PostStatus `json:"status,omitempty"`
}
