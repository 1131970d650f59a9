package movement

import (
	"testing"

	"hrms/internal/domain/employee"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestMutationForPromotion(t *testing.T) {
	m := Movement{
		Type:            TypePromotion,
		NewPositionID:   strPtr("p2"),
		NewDepartmentID: strPtr("d2"),
		NewSalary:       numPtr(9000),
	}
	mut := MutationFor(m, ApprovalInput{})

	if pos, ok := mut.PositionID(); !ok || pos != "p2" {
		t.Fatalf("position: %v %v", pos, ok)
	}
	if dept, ok := mut.DepartmentID(); !ok || dept != "d2" {
		t.Fatalf("department: %v %v", dept, ok)
	}
	if salary, ok := mut.Salary(); !ok || salary != 9000 {
		t.Fatalf("salary: %v %v", salary, ok)
	}
	if _, ok := mut.Status(); ok {
		t.Fatal("promotion must not change status")
	}
}

func TestMutationForPromotionSalaryOnly(t *testing.T) {
	m := Movement{Type: TypePromotion, NewSalary: numPtr(9500)}
	mut := MutationFor(m, ApprovalInput{})

	if _, ok := mut.PositionID(); ok {
		t.Fatal("a salary-only promotion must leave the position alone")
	}
	if _, ok := mut.DepartmentID(); ok {
		t.Fatal("a salary-only promotion must leave the department alone")
	}
	if salary, ok := mut.Salary(); !ok || salary != 9500 {
		t.Fatalf("salary: %v %v", salary, ok)
	}
}

func TestMutationForTransfer(t *testing.T) {
	m := Movement{Type: TypeTransfer, NewDepartmentID: strPtr("d2")}
	mut := MutationFor(m, ApprovalInput{})

	if dept, ok := mut.DepartmentID(); !ok || dept != "d2" {
		t.Fatalf("department: %v %v", dept, ok)
	}
	if _, ok := mut.Salary(); ok {
		t.Fatal("transfer must not change salary")
	}
}

func TestMutationForSalaryTypes(t *testing.T) {
	for _, typ := range []Type{TypeSalaryAdjustment, TypeMerit, TypeSalaryEqualization} {
		m := Movement{Type: typ, NewSalary: numPtr(7000)}
		mut := MutationFor(m, ApprovalInput{})
		if salary, ok := mut.Salary(); !ok || salary != 7000 {
			t.Fatalf("%s salary: %v %v", typ, salary, ok)
		}
		if _, ok := mut.DepartmentID(); ok {
			t.Fatalf("%s must not change department", typ)
		}
		if _, ok := mut.PositionID(); ok {
			t.Fatalf("%s must not change position", typ)
		}
	}
}

func TestMutationForScheduleChangeApprovalOverride(t *testing.T) {
	m := Movement{Type: TypeScheduleChange, WorkSchedule: "08:00-17:00"}
	mut := MutationFor(m, ApprovalInput{WorkSchedule: "09:00-18:00"})

	if sched, ok := mut.WorkSchedule(); !ok || sched != "09:00-18:00" {
		t.Fatalf("schedule: %v %v", sched, ok)
	}
}

func TestMutationForModeChangeFallback(t *testing.T) {
	m := Movement{Type: TypeModeChange, WorkMode: employee.WorkModeRemote}
	mut := MutationFor(m, ApprovalInput{})

	if mode, ok := mut.WorkMode(); !ok || mode != employee.WorkModeRemote {
		t.Fatalf("mode: %v %v", mode, ok)
	}
}

func TestMutationForTermination(t *testing.T) {
	m := Movement{Type: TypeTermination, PreviousSalary: numPtr(8000)}
	mut := MutationFor(m, ApprovalInput{})

	status, ok := mut.Status()
	if !ok || status != employee.StatusInactive {
		t.Fatalf("status: %v %v", status, ok)
	}
	if _, ok := mut.Salary(); ok {
		t.Fatal("termination must leave the salary untouched")
	}
	if _, ok := mut.DepartmentID(); ok {
		t.Fatal("termination must leave the department untouched")
	}
	if _, ok := mut.PositionID(); ok {
		t.Fatal("termination must leave the position untouched")
	}
}

func TestMutationForLeaves(t *testing.T) {
	cases := map[Type]employee.Status{
		TypeLeaveOfAbsence: employee.StatusOnLeave,
		TypeMaternityLeave: employee.StatusMaternityLeave,
	}
	for typ, want := range cases {
		mut := MutationFor(Movement{Type: typ}, ApprovalInput{})
		status, ok := mut.Status()
		if !ok || status != want {
			t.Fatalf("%s: status %v %v", typ, status, ok)
		}
	}
}
