package dto

// LoginRequest represents roster credentials
type LoginRequest struct {
	ID   string `json:"id" form:"id" binding:"required" example:"1"`
	Name string `json:"name" form:"name" binding:"required" example:"Alice"`
}

// SessionResponse describes the logged-in identity
type SessionResponse struct {
	ID   string `json:"id" example:"1"`
	Name string `json:"name" example:"Alice"`
}
