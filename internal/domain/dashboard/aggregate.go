package dashboard

import (
	"fmt"
	"sort"
	"time"

	"hrms/internal/domain/employee"
	"hrms/internal/domain/movement"
	"hrms/internal/domain/org"
)

func computeStats(emps []EmployeeSnapshot, movs []MovementSnapshot, departments, positions int) Stats {
	stats := Stats{
		TotalEmployees: len(emps),
		ByStatus:       map[employee.Status]int{},
		Departments:    departments,
		Positions:      positions,
	}
	for _, e := range emps {
		stats.ByStatus[e.Status]++
		if e.Status == employee.StatusActive {
			stats.ActiveEmployees++
			stats.TotalSalaries += e.Salary
		}
	}
	if stats.ActiveEmployees > 0 {
		stats.AverageSalary = stats.TotalSalaries / float64(stats.ActiveEmployees)
	}
	for _, m := range movs {
		if m.Status == movement.StatusPending {
			stats.PendingMovements++
		}
	}
	stats.RecentMovements = recentMovements(movs, 5)
	return stats
}

// recentMovements returns the n most recently requested movements,
// newest first.
func recentMovements(movs []MovementSnapshot, n int) []MovementSnapshot {
	sorted := make([]MovementSnapshot, len(movs))
	copy(sorted, movs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RequestedAt.After(sorted[j].RequestedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// distribution counts active employees per bucket. Inactive and
// on-leave records never contribute.
func distribution(emps []EmployeeSnapshot, key func(EmployeeSnapshot) (string, string)) []Bucket {
	counts := map[string]*Bucket{}
	for _, e := range emps {
		if e.Status != employee.StatusActive {
			continue
		}
		k, label := key(e)
		if b, ok := counts[k]; ok {
			b.Count++
		} else {
			counts[k] = &Bucket{Key: k, Label: label, Count: 1}
		}
	}
	out := make([]Bucket, 0, len(counts))
	for _, b := range counts {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func byDepartment(emps []EmployeeSnapshot) []Bucket {
	return distribution(emps, func(e EmployeeSnapshot) (string, string) {
		return e.DepartmentID, e.DepartmentName
	})
}

func byPosition(emps []EmployeeSnapshot) []Bucket {
	return distribution(emps, func(e EmployeeSnapshot) (string, string) {
		return e.PositionID, e.PositionTitle
	})
}

func byWorkMode(emps []EmployeeSnapshot) []Bucket {
	return distribution(emps, func(e EmployeeSnapshot) (string, string) {
		return string(e.WorkMode), string(e.WorkMode)
	})
}

func byWorkload(emps []EmployeeSnapshot) []Bucket {
	return distribution(emps, func(e EmployeeSnapshot) (string, string) {
		label := fmt.Sprintf("%dh", e.Workload)
		return label, label
	})
}

// movementHistory buckets movements by effective date per calendar
// month over the last `months` months ending at `now`, most recent
// month first. Every month in the window appears even when empty, and
// every status counts, not only approvals.
func movementHistory(now time.Time, months int, movs []MovementSnapshot) []MonthBucket {
	if months <= 0 {
		months = 12
	}
	index := map[string]*MonthBucket{}
	order := make([]string, 0, months)
	cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < months; i++ {
		key := cursor.Format("2006-01")
		index[key] = &MonthBucket{Month: key}
		order = append(order, key)
		cursor = cursor.AddDate(0, -1, 0)
	}

	for _, m := range movs {
		key := m.EffectiveDate.UTC().Format("2006-01")
		bucket, ok := index[key]
		if !ok {
			continue
		}
		bucket.Total++
		switch m.Type {
		case movement.TypePromotion:
			bucket.Promotions++
		case movement.TypeTransfer:
			bucket.Transfers++
		case movement.TypeSalaryAdjustment, movement.TypeMerit, movement.TypeSalaryEqualization:
			bucket.SalaryAdjustments++
		case movement.TypeTermination:
			bucket.Terminations++
		case movement.TypeLeaveOfAbsence, movement.TypeMaternityLeave:
			bucket.Leaves++
		}
	}

	out := make([]MonthBucket, 0, months)
	for _, key := range order {
		out = append(out, *index[key])
	}
	return out
}

// salaryAnalysis averages over active employees. Every career level
// appears in the breakdown; levels with no employees report a zero
// mean rather than being dropped.
func salaryAnalysis(emps []EmployeeSnapshot) SalaryAnalysis {
	analysis := SalaryAnalysis{}
	type acc struct {
		sum   float64
		count int
	}
	levels := map[org.CareerLevel]*acc{}
	for _, l := range org.CareerLevels {
		levels[l] = &acc{}
	}

	var sum float64
	var count int
	for _, e := range emps {
		if e.Status != employee.StatusActive {
			continue
		}
		sum += e.Salary
		count++
		if count == 1 || e.Salary < analysis.MinSalary {
			analysis.MinSalary = e.Salary
		}
		if e.Salary > analysis.MaxSalary {
			analysis.MaxSalary = e.Salary
		}
		if a, ok := levels[e.CareerLevel]; ok {
			a.sum += e.Salary
			a.count++
		}
	}
	if count > 0 {
		analysis.MeanSalary = sum / float64(count)
	}

	analysis.ByLevel = make([]LevelStat, 0, len(org.CareerLevels))
	for _, l := range org.CareerLevels {
		a := levels[l]
		stat := LevelStat{Level: l, Count: a.count}
		if a.count > 0 {
			stat.MeanSalary = a.sum / float64(a.count)
		}
		analysis.ByLevel = append(analysis.ByLevel, stat)
	}
	return analysis
}

// budgetComparison reports per-department utilization of the salary
// and headcount budgets. Only active employees count as actuals. A
// department with a zero budget reports zero utilization.
func budgetComparison(depts []DepartmentSnapshot, emps []EmployeeSnapshot) []BudgetRow {
	rows := make([]BudgetRow, 0, len(depts))
	actualSalaries := map[string]float64{}
	actualHeadcount := map[string]int{}
	for _, e := range emps {
		if e.Status != employee.StatusActive {
			continue
		}
		actualSalaries[e.DepartmentID] += e.Salary
		actualHeadcount[e.DepartmentID]++
	}
	for _, d := range depts {
		row := BudgetRow{
			DepartmentID:    d.ID,
			DepartmentName:  d.Name,
			BudgetSalaries:  d.BudgetSalaries,
			ActualSalaries:  actualSalaries[d.ID],
			BudgetHeadcount: d.BudgetHeadcount,
			ActualHeadcount: actualHeadcount[d.ID],
		}
		if d.BudgetSalaries > 0 {
			row.SalaryUtilization = row.ActualSalaries / d.BudgetSalaries * 100
		}
		if d.BudgetHeadcount > 0 {
			row.HeadcountUtilization = float64(row.ActualHeadcount) / float64(d.BudgetHeadcount) * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DepartmentName < rows[j].DepartmentName })
	return rows
}
