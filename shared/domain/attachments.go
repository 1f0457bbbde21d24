package domain

type AttachmentType string

const (
	AttachmentImage AttachmentType = "IMAGE"
)

// Attachment is owned by exactly one Post.
type Attachment struct {
	URL         string         `json:"url" validate:"required"`
	Description *string        `json:"description"`
	Type        AttachmentType `json:"type" validate:"oneof=IMAGE"`
}
