package leave

import (
	"bytes"
	"testing"
	"time"
)

func TestWriteConflictReportPDF(t *testing.T) {
	report := ConflictReport{
		RequestID:      "req-1",
		EmployeeID:     "emp-1",
		EmployeeName:   "Devon Clarke",
		HierarchyLevel: "L9",
		LeaveDays:      5,
		StartDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		HRApproved:     true,
		ResourceHold:   true,
		Decision:       DecisionPendingL6,
		Reason:         "Operational risk - requires L6 approval",
		Quota:          QuotaSummary{TotalAnnualLeave: 20, UsedLeave: 5, RemainingLeave: 15, PendingLeave: 5, BalanceAfterApproval: 10},
	}

	var buf bytes.Buffer
	if err := WriteConflictReportPDF(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF bytes")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF header")
	}
}
