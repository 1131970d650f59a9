package compensation

import "sort"

// Reconcile flags every row whose salary falls outside the current
// band. Rows without a current band are skipped: no band means nothing
// to reconcile against. Findings come back ordered by evaluation score
// descending, ties broken by employee id.
func Reconcile(rows []ComparisonRow) []Finding {
	findings := []Finding{}
	for _, row := range rows {
		if row.Band == nil || row.Band.Contains(row.Salary) {
			continue
		}
		f := Finding{
			EmployeeID:      row.EmployeeID,
			EmployeeName:    row.EmployeeName,
			DepartmentID:    row.DepartmentID,
			DepartmentName:  row.DepartmentName,
			PositionID:      row.PositionID,
			PositionTitle:   row.PositionTitle,
			CareerLevel:     row.CareerLevel,
			Salary:          row.Salary,
			BandMin:         row.Band.MinValue,
			BandMax:         row.Band.MaxValue,
			BandMid:         row.Band.MidValue(),
			EvaluationScore: row.EvaluationScore,
		}
		if row.Salary < row.Band.MinValue {
			f.Direction = DirectionBelow
			f.Deviation = row.Band.MinValue - row.Salary
		} else {
			f.Direction = DirectionAbove
			f.Deviation = row.Salary - row.Band.MaxValue
		}
		findings = append(findings, f)
	}
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].EvaluationScore != findings[j].EvaluationScore {
			return findings[i].EvaluationScore > findings[j].EvaluationScore
		}
		return findings[i].EmployeeID < findings[j].EmployeeID
	})
	return findings
}
