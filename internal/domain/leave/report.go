package leave

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WriteConflictReportPDF renders a conflict analysis as a one-page PDF for
// offline review.
func WriteConflictReportPDF(w io.Writer, report ConflictReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Conflict Analysis")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Request: %s", report.RequestID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", report.EmployeeName, report.HierarchyLevel))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s (%d days)",
		report.StartDate.Format("2006-01-02"), report.EndDate.Format("2006-01-02"), report.LeaveDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Decision: %s", report.Decision))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Reason: %s", report.Reason))
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Resource hold: %s", yesNo(report.ResourceHold)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Incident hard block: %s", yesNo(report.IncidentHardBlock)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Pending tasks: %d", len(report.PendingTasks)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Critical tasks: %d", len(report.CriticalTasks)))
	pdf.Ln(7)
	if report.Alternate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Alternate: %s (skill match %.0f%%, availability %d%%)",
			report.Alternate.Name, report.Alternate.SkillMatch, report.Alternate.Availability))
	} else {
		pdf.Cell(0, 8, "Alternate: none found")
	}
	pdf.Ln(10)

	pdf.Cell(0, 8, fmt.Sprintf("Quota: %d used of %d, %d remaining, %d after approval",
		report.Quota.UsedLeave, report.Quota.TotalAnnualLeave,
		report.Quota.RemainingLeave, report.Quota.BalanceAfterApproval))
	pdf.Ln(7)

	if report.Partial {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Incomplete: %s data unavailable", strings.Join(report.Unavailable, ", ")))
		pdf.Ln(7)
	}

	return pdf.Output(w)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
