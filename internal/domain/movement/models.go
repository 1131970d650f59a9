package movement

import (
	"time"

	"hrms/internal/domain/employee"
)

// Type classifies a movement. The type decides which employee fields
// change when the movement is approved.
type Type string

const (
	TypePromotion          Type = "Promotion"
	TypeTransfer           Type = "Transfer"
	TypeSalaryAdjustment   Type = "SalaryAdjustment"
	TypeMerit              Type = "Merit"
	TypeSalaryEqualization Type = "SalaryEqualization"
	TypeScheduleChange     Type = "ScheduleChange"
	TypeModeChange         Type = "ModeChange"
	TypeTermination        Type = "Termination"
	TypeLeaveOfAbsence     Type = "LeaveOfAbsence"
	TypeMaternityLeave     Type = "MaternityLeave"
)

func (t Type) Valid() bool {
	switch t {
	case TypePromotion, TypeTransfer, TypeSalaryAdjustment, TypeMerit,
		TypeSalaryEqualization, TypeScheduleChange, TypeModeChange,
		TypeTermination, TypeLeaveOfAbsence, TypeMaternityLeave:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Movement is a requested change to an employee record. Previous*
// fields are snapshots taken when the request is created; New* fields
// are the proposed values and stay nil when the type does not touch
// them.
type Movement struct {
	ID                   string            `json:"id"`
	EmployeeID           string            `json:"employeeId"`
	Type                 Type              `json:"type"`
	PreviousDepartmentID *string           `json:"previousDepartmentId,omitempty"`
	NewDepartmentID      *string           `json:"newDepartmentId,omitempty"`
	PreviousPositionID   *string           `json:"previousPositionId,omitempty"`
	NewPositionID        *string           `json:"newPositionId,omitempty"`
	PreviousSalary       *float64          `json:"previousSalary,omitempty"`
	NewSalary            *float64          `json:"newSalary,omitempty"`
	WorkSchedule         string            `json:"workSchedule,omitempty"`
	WorkMode             employee.WorkMode `json:"workMode,omitempty"`
	Justification        string            `json:"justification"`
	Notes                string            `json:"notes,omitempty"`
	RequestedAt          time.Time         `json:"requestedAt"`
	EffectiveDate        time.Time         `json:"effectiveDate"`
	Status               Status            `json:"status"`
	RejectionReason      string            `json:"rejectionReason,omitempty"`
	ApprovedBy           string            `json:"approvedBy,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// Detailed is a Movement joined with the employee's display fields.
type Detailed struct {
	Movement
	EmployeeName string `json:"employeeName"`
	DepartmentID string `json:"departmentId"`
}

type Filter struct {
	EmployeeID string
	Type       Type
	Status     Status
	From       *time.Time
	To         *time.Time
}
