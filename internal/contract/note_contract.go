package contract

const MaxNoteImageSizeBytes = 10 * 1024 * 1024

var ValidNoteImageTypes = []string{"png", "jpg", "jpeg", "webp", "gif"}

type NoteResponse struct {
	ID            int      `json:"id"`
	UserID        int      `json:"user_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Color         string   `json:"color"`
	Reminder      *string  `json:"reminder"`
	ImageKey      string   `json:"image_key,omitempty"`
	Labels        []string `json:"labels"`
	Collaborators []string `json:"collaborators"`
	IsPinned      bool     `json:"is_pinned"`
	IsArchived    bool     `json:"is_archived"`
	IsTrashed     bool     `json:"is_trashed"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type NoteRequest struct {
	Title         string   `json:"title" validate:"required,max=140"`
	Description   string   `json:"description" validate:"required"`
	Color         string   `json:"color" validate:"omitempty,max=18"`
	Reminder      *string  `json:"reminder" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Labels        []string `json:"labels" validate:"omitempty,dive,required,max=130"`
	Collaborators []string `json:"collaborators" validate:"omitempty,dive,required,email"`
	IsPinned      bool     `json:"is_pinned"`
	IsArchived    bool     `json:"is_archived"`
}

type UpdateNoteRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=1,max=140"`
	Description   *string  `json:"description" validate:"omitempty,min=1"`
	Color         *string  `json:"color" validate:"omitempty,max=18"`
	Reminder      *string  `json:"reminder" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Labels        []string `json:"labels" validate:"omitempty,dive,required,max=130"`
	Collaborators []string `json:"collaborators" validate:"omitempty,dive,required,email"`
	IsPinned      *bool    `json:"is_pinned"`
	IsArchived    *bool    `json:"is_archived"`
}
