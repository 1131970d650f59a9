package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"hrms/internal/domain/dashboard"
	"hrms/internal/domain/movement"
)

// MovementHistoryCSV writes the monthly movement history, one row per
// month in the order the aggregation produced.
func MovementHistoryCSV(w io.Writer, history []dashboard.MonthBucket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", "total", "promotions", "transfers", "salary_adjustments", "terminations", "leaves"}); err != nil {
		return err
	}
	for _, bucket := range history {
		record := []string{
			bucket.Month,
			strconv.Itoa(bucket.Total),
			strconv.Itoa(bucket.Promotions),
			strconv.Itoa(bucket.Transfers),
			strconv.Itoa(bucket.SalaryAdjustments),
			strconv.Itoa(bucket.Terminations),
			strconv.Itoa(bucket.Leaves),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MovementsCSV writes a flat listing of movements for offline review.
func MovementsCSV(w io.Writer, movements []movement.Detailed) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "employee", "type", "status", "effective_date", "requested_at", "justification"}); err != nil {
		return err
	}
	for _, m := range movements {
		record := []string{
			m.ID,
			m.EmployeeName,
			string(m.Type),
			string(m.Status),
			m.EffectiveDate.Format("2006-01-02"),
			m.RequestedAt.Format("2006-01-02"),
			m.Justification,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
