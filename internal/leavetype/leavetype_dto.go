package leavetype

type CreateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	DefaultDays int    `json:"default_days" binding:"required,min=1,max=365"`
	Color       string `json:"color"`
	Category    string `json:"category" binding:"omitempty,oneof=standard maternity paternity unpaid"`
}

type UpdateLeaveTypeRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	DefaultDays *int    `json:"default_days" binding:"omitempty,min=1,max=365"`
	Color       *string `json:"color"`
	Category    string  `json:"category" binding:"omitempty,oneof=standard maternity paternity unpaid"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultDays int    `json:"default_days"`
	Color       string `json:"color"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
}
