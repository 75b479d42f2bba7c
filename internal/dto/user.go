package dto

// UpdateAccountRequest carries the mutable account details. Both fields are
// required; blank values are rejected before reaching the service.
type UpdateAccountRequest struct {
	FullName string `json:"fullname" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}
