package models

import "time"

type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	EmployeeNo   string    `gorm:"uniqueIndex;not null;size:32" json:"employee_no"`
	EmployeeName string    `gorm:"not null;size:200" json:"employee_name"`
}
