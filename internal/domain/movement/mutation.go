package movement

import "hrms/internal/domain/employee"

// EmployeeMutation is the change an approved movement applies to the
// employee record. Nil fields are untouched. Values are copied in and
// out so the mutation cannot alias caller state.
type EmployeeMutation struct {
	departmentID *string
	positionID   *string
	salary       *float64
	workSchedule *string
	workMode     *employee.WorkMode
	status       *employee.Status
}

func (m EmployeeMutation) IsZero() bool {
	return m.departmentID == nil && m.positionID == nil && m.salary == nil &&
		m.workSchedule == nil && m.workMode == nil && m.status == nil
}

func (m EmployeeMutation) DepartmentID() (string, bool) { return deref(m.departmentID) }
func (m EmployeeMutation) PositionID() (string, bool)   { return deref(m.positionID) }
func (m EmployeeMutation) WorkSchedule() (string, bool) { return deref(m.workSchedule) }

func (m EmployeeMutation) Salary() (float64, bool) {
	if m.salary == nil {
		return 0, false
	}
	return *m.salary, true
}

func (m EmployeeMutation) WorkMode() (employee.WorkMode, bool) {
	if m.workMode == nil {
		return "", false
	}
	return *m.workMode, true
}

func (m EmployeeMutation) Status() (employee.Status, bool) {
	if m.status == nil {
		return "", false
	}
	return *m.status, true
}

func deref(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func ptr[T any](v T) *T { return &v }

// ApprovalInput carries the values an approver may supply at approval
// time for schedule and mode changes.
type ApprovalInput struct {
	WorkSchedule string
	WorkMode     employee.WorkMode
}

// MutationFor derives the employee change for an approved movement.
//   - Promotion moves the employee to the new position (and its
//     department) when one is set, and to the new salary when one is
//     set. A promotion carrying only a salary leaves the position
//     alone.
//   - Transfer changes the department, and the position when one is
//     set.
//   - The three salary types change only the salary.
//   - Schedule and mode changes take the value supplied at approval,
//     falling back to the one proposed at request time.
//   - Termination, leave and maternity leave only change the status;
//     salary, department and position stay as they are.
func MutationFor(m Movement, in ApprovalInput) EmployeeMutation {
	var mut EmployeeMutation
	switch m.Type {
	case TypePromotion:
		if m.NewPositionID != nil {
			mut.positionID = ptr(*m.NewPositionID)
			if m.NewDepartmentID != nil {
				mut.departmentID = ptr(*m.NewDepartmentID)
			}
		}
		if m.NewSalary != nil {
			mut.salary = ptr(*m.NewSalary)
		}
	case TypeTransfer:
		if m.NewDepartmentID != nil {
			mut.departmentID = ptr(*m.NewDepartmentID)
		}
		if m.NewPositionID != nil {
			mut.positionID = ptr(*m.NewPositionID)
		}
	case TypeSalaryAdjustment, TypeMerit, TypeSalaryEqualization:
		if m.NewSalary != nil {
			mut.salary = ptr(*m.NewSalary)
		}
	case TypeScheduleChange:
		schedule := m.WorkSchedule
		if in.WorkSchedule != "" {
			schedule = in.WorkSchedule
		}
		if schedule != "" {
			mut.workSchedule = ptr(schedule)
		}
	case TypeModeChange:
		mode := m.WorkMode
		if in.WorkMode != "" {
			mode = in.WorkMode
		}
		if mode != "" {
			mut.workMode = ptr(mode)
		}
	case TypeTermination:
		mut.status = ptr(employee.StatusInactive)
	case TypeLeaveOfAbsence:
		mut.status = ptr(employee.StatusOnLeave)
	case TypeMaternityLeave:
		mut.status = ptr(employee.StatusMaternityLeave)
	}
	return mut
}
