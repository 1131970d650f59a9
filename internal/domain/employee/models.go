package employee

import (
	"time"

	"hrms/internal/domain/org"
)

type Status string

const (
	StatusActive         Status = "Active"
	StatusInactive       Status = "Inactive"
	StatusOnLeave        Status = "OnLeave"
	StatusVacation       Status = "Vacation"
	StatusMaternityLeave Status = "MaternityLeave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusVacation, StatusMaternityLeave:
		return true
	}
	return false
}

type WorkMode string

const (
	WorkModeOnSite WorkMode = "OnSite"
	WorkModeRemote WorkMode = "Remote"
	WorkModeHybrid WorkMode = "Hybrid"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeOnSite, WorkModeRemote, WorkModeHybrid:
		return true
	}
	return false
}

// Workloads are monthly contract hours.
var Workloads = []int{150, 180, 200, 220}

func ValidWorkload(hours int) bool {
	for _, w := range Workloads {
		if w == hours {
			return true
		}
	}
	return false
}

type Employee struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	NationalID      string          `json:"nationalId"`
	Phone           string          `json:"phone,omitempty"`
	BirthDate       *time.Time      `json:"birthDate,omitempty"`
	DepartmentID    string          `json:"departmentId"`
	PositionID      string          `json:"positionId"`
	ManagerID       string          `json:"managerId,omitempty"`
	Status          Status          `json:"status"`
	HiredAt         *time.Time      `json:"hiredAt,omitempty"`
	Salary          float64         `json:"salary"`
	Workload        int             `json:"workload"`
	WorkSchedule    string          `json:"workSchedule,omitempty"`
	WorkMode        WorkMode        `json:"workMode"`
	CareerLevel     org.CareerLevel `json:"careerLevel"`
	EvaluationScore float64         `json:"evaluationScore"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Detailed is an Employee joined with the names a list view needs.
type Detailed struct {
	Employee
	DepartmentName string `json:"departmentName"`
	PositionTitle  string `json:"positionTitle"`
}

// Filter narrows a list query. Every field is optional; the zero value
// matches all visible employees.
type Filter struct {
	DepartmentID string
	PositionID   string
	Status       Status
	WorkMode     WorkMode
	CareerLevel  org.CareerLevel
	Search       string
}
