package employee

import "time"

type CreateEmployeeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=150"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Gender      string `json:"gender" binding:"required,oneof=female male other"`
	Department  string `json:"department" binding:"required,min=2,max=100"`
	Role        string `json:"role" binding:"omitempty,oneof=employee hr"`
	JoiningDate string `json:"joining_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=150"`
	Email      string `json:"email" binding:"required,email"`
	Gender     string `json:"gender" binding:"required,oneof=female male other"`
	Department string `json:"department" binding:"required,min=2,max=100"`
	Role       string `json:"role" binding:"omitempty,oneof=employee hr"`
}

type ListEmployeeQuery struct {
	Search     string `form:"search" binding:"omitempty,max=150"`
	Department string `form:"department" binding:"omitempty,max=100"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type EmployeeResponse struct {
	ID             string    `json:"id"`
	EmployeeNumber string    `json:"employee_number"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Gender         string    `json:"gender"`
	Department     string    `json:"department"`
	Role           string    `json:"role"`
	JoiningDate    string    `json:"joining_date"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
