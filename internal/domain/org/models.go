package org

import "time"

// CareerLevel is the single career ladder shared by positions,
// compensation bands and employees.
type CareerLevel string

const (
	LevelJunior      CareerLevel = "Junior"
	LevelMid         CareerLevel = "Mid"
	LevelSenior      CareerLevel = "Senior"
	LevelSpecialist  CareerLevel = "Specialist"
	LevelCoordinator CareerLevel = "Coordinator"
	LevelManager     CareerLevel = "Manager"
	LevelDirector    CareerLevel = "Director"
)

// CareerLevels lists every level in ladder order.
var CareerLevels = []CareerLevel{
	LevelJunior,
	LevelMid,
	LevelSenior,
	LevelSpecialist,
	LevelCoordinator,
	LevelManager,
	LevelDirector,
}

func (l CareerLevel) Valid() bool {
	for _, candidate := range CareerLevels {
		if l == candidate {
			return true
		}
	}
	return false
}

type Budget struct {
	Salaries  float64 `json:"salaries"`
	Headcount int     `json:"headcount"`
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CostCenter  string    `json:"costCenter"`
	ManagerID   string    `json:"managerId,omitempty"`
	Budget      Budget    `json:"budget"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Position struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	DepartmentID string      `json:"departmentId"`
	SalaryRange  SalaryRange `json:"salaryRange"`
	CareerLevel  CareerLevel `json:"careerLevel"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// DepartmentFilter enumerates the only fields a caller may filter
// departments by. Unknown query keys are rejected at the boundary.
type DepartmentFilter struct {
	Active *bool
}

// PositionFilter enumerates the permissible position filters.
type PositionFilter struct {
	DepartmentID string
	CareerLevel  CareerLevel
	Active       *bool
}
