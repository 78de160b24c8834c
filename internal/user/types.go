package user

// UpdateRequest represents the user update payload. Nil fields are left
// untouched.
type UpdateRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"fullName" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// AdminUpdateRequest extends UpdateRequest with fields only superusers
// may change.
type AdminUpdateRequest struct {
	UpdateRequest
	IsActive    *bool `json:"isActive"`
	IsSuperuser *bool `json:"isSuperuser"`
}

// ListQuery represents the pagination query parameters for list endpoints.
type ListQuery struct {
	Page int `form:"page,default=1"`
	Size int `form:"size"`
}
