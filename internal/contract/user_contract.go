package contract

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=20"`
	LastName  string `json:"last_name" validate:"required,max=20"`
	UserName  string `json:"user_name" validate:"required,min=2,max=20"`
	Email     string `json:"email" validate:"required,email,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit,hasspecial"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetCompleteRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=64,hasupper,haslower,hasdigit,hasspecial"`
}

type AccountResponse struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	UserName   string `json:"user_name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
}
