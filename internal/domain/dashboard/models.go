package dashboard

import (
	"time"

	"hrms/internal/domain/compensation"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/movement"
	"hrms/internal/domain/org"
)

// EmployeeSnapshot is the slice of an employee record the aggregations
// need. Loading snapshots once keeps every report consistent within a
// single request.
type EmployeeSnapshot struct {
	ID             string
	DepartmentID   string
	DepartmentName string
	PositionID     string
	PositionTitle  string
	Status         employee.Status
	WorkMode       employee.WorkMode
	Workload       int
	CareerLevel    org.CareerLevel
	Salary         float64
}

type MovementSnapshot struct {
	ID            string          `json:"id"`
	EmployeeName  string          `json:"employeeName"`
	Type          movement.Type   `json:"type"`
	Status        movement.Status `json:"status"`
	RequestedAt   time.Time       `json:"requestedAt"`
	EffectiveDate time.Time       `json:"effectiveDate"`
}

type DepartmentSnapshot struct {
	ID              string
	Name            string
	BudgetSalaries  float64
	BudgetHeadcount int
}

type Stats struct {
	TotalEmployees   int                     `json:"totalEmployees"`
	ActiveEmployees  int                     `json:"activeEmployees"`
	ByStatus         map[employee.Status]int `json:"byStatus"`
	Departments      int                     `json:"departments"`
	Positions        int                     `json:"positions"`
	PendingMovements int                     `json:"pendingMovements"`
	TotalSalaries    float64                 `json:"totalSalaries"`
	AverageSalary    float64                 `json:"averageSalary"`
	RecentMovements  []MovementSnapshot      `json:"recentMovements"`
}

// Bucket is one slice of a distribution.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// MonthBucket is one month of movement history. Months inside the
// window with no movements still appear, zeroed.
type MonthBucket struct {
	Month             string `json:"month"` // YYYY-MM
	Total             int    `json:"total"`
	Promotions        int    `json:"promotions"`
	Transfers         int    `json:"transfers"`
	SalaryAdjustments int    `json:"salaryAdjustments"`
	Terminations      int    `json:"terminations"`
	Leaves            int    `json:"leaves"`
}

type LevelStat struct {
	Level      org.CareerLevel `json:"level"`
	Count      int             `json:"count"`
	MeanSalary float64         `json:"meanSalary"`
}

type SalaryAnalysis struct {
	MeanSalary float64                `json:"meanSalary"`
	MinSalary  float64                `json:"minSalary"`
	MaxSalary  float64                `json:"maxSalary"`
	ByLevel    []LevelStat            `json:"byLevel"`
	OutOfBand  []compensation.Finding `json:"outOfBand"`
}

// BudgetRow compares a department's budget with its actuals. A zero
// budget yields zero utilization, never a division error.
type BudgetRow struct {
	DepartmentID         string  `json:"departmentId"`
	DepartmentName       string  `json:"departmentName"`
	BudgetSalaries       float64 `json:"budgetSalaries"`
	ActualSalaries       float64 `json:"actualSalaries"`
	SalaryUtilization    float64 `json:"salaryUtilization"`
	BudgetHeadcount      int     `json:"budgetHeadcount"`
	ActualHeadcount      int     `json:"actualHeadcount"`
	HeadcountUtilization float64 `json:"headcountUtilization"`
}
