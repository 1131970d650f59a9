package compensation

import (
	"time"

	"hrms/internal/domain/org"
)

// Band is a salary band for a (position, career level) pair. Only one
// band per pair is current at a time.
type Band struct {
	ID          string          `json:"id"`
	PositionID  string          `json:"positionId"`
	CareerLevel org.CareerLevel `json:"careerLevel"`
	MinValue    float64         `json:"minValue"`
	MaxValue    float64         `json:"maxValue"`
	Current     bool            `json:"current"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (b Band) MidValue() float64 {
	return (b.MinValue + b.MaxValue) / 2
}

// Contains reports whether the salary sits inside the band. Both
// bounds are inclusive; a salary exactly on a bound is in band.
func (b Band) Contains(salary float64) bool {
	return salary >= b.MinValue && salary <= b.MaxValue
}

type BandFilter struct {
	PositionID  string
	CareerLevel org.CareerLevel
	Current     *bool
}

type Direction string

const (
	DirectionBelow Direction = "below"
	DirectionAbove Direction = "above"
)

// Finding is one employee whose salary falls outside the current band
// for their position and level.
type Finding struct {
	EmployeeID      string          `json:"employeeId"`
	EmployeeName    string          `json:"employeeName"`
	DepartmentID    string          `json:"departmentId"`
	DepartmentName  string          `json:"departmentName"`
	PositionID      string          `json:"positionId"`
	PositionTitle   string          `json:"positionTitle"`
	CareerLevel     org.CareerLevel `json:"careerLevel"`
	Salary          float64         `json:"salary"`
	BandMin         float64         `json:"bandMin"`
	BandMax         float64         `json:"bandMax"`
	BandMid         float64         `json:"bandMid"`
	Direction       Direction       `json:"direction"`
	Deviation       float64         `json:"deviation"`
	EvaluationScore float64         `json:"evaluationScore"`
}

// ComparisonRow pairs an employee snapshot with the current band for
// their position and level, when one exists.
type ComparisonRow struct {
	EmployeeID      string
	EmployeeName    string
	DepartmentID    string
	DepartmentName  string
	PositionID      string
	PositionTitle   string
	CareerLevel     org.CareerLevel
	Salary          float64
	EvaluationScore float64
	Band            *Band
}
