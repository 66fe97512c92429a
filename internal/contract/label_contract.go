package contract

type LabelResponse struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LabelRequest struct {
	Name string `json:"name" validate:"required,max=130"`
}

type UpdateLabelRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=130"`
}
