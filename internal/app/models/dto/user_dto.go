package dto

// UserFilterQuery holds the users list filters
type UserFilterQuery struct {
	Search   string `form:"q" json:"q"`
	Admitted string `form:"admitted" json:"admitted" binding:"omitempty,oneof=all admitted notAdmitted"`
	Batch    string `form:"batch" json:"batch"`
}

// UpdateUserRequest carries the editable user fields
type UpdateUserRequest struct {
	UserAccess string `json:"user_access" example:"Batch 1 - Online"`
	SessionID  string `json:"sessionId" example:"2024-A"`
	EndSubs    string `json:"end_subs" example:"Dec 2025"`
	IsAdmitted bool   `json:"isAdmitted" example:"true"`
}
