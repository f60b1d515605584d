package leave

import (
	"errors"
	"testing"
)

func TestStatusPredicates(t *testing.T) {
	if !StatusApproved.Terminal() || !StatusRejected.Terminal() || !StatusCancelled.Terminal() {
		t.Fatal("approved/rejected/cancelled are terminal")
	}
	if StatusPendingHRReview.Terminal() || StatusForwardedToTeamLead.Terminal() || StatusPendingL7Decision.Terminal() {
		t.Fatal("in-flight statuses are not terminal")
	}

	if !StatusPendingHRReview.Cancellable() || !StatusForwardedToTeamLead.Cancellable() {
		t.Fatal("pre-escalation statuses are cancellable")
	}
	if StatusPendingL7Decision.Cancellable() || StatusApproved.Cancellable() {
		t.Fatal("escalated and terminal statuses are not cancellable")
	}
}

func TestParseActionsRejectUnknown(t *testing.T) {
	if _, err := ParseTLAction("reject"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := ParsePMAction("forward_to_pm"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	action, err := ParseTLAction("forward_to_pm")
	if err != nil || action != TLForwardToPM {
		t.Fatalf("expected forward_to_pm, got %v %v", action, err)
	}
}

func TestParseStatusAndType(t *testing.T) {
	if _, err := ParseStatus("pending"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := ParseLeaveType("vacation"); err == nil {
		t.Fatal("expected error for unknown leave type")
	}
	status, err := ParseStatus("pending_l7_decision")
	if err != nil || status != StatusPendingL7Decision {
		t.Fatalf("expected pending_l7_decision, got %v %v", status, err)
	}
}
