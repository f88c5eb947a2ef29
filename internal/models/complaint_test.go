package models

import "testing"

func TestCanTransitionComplaint(t *testing.T) {
	if !CanTransitionComplaint(ComplaintPending, ComplaintInReview) {
		t.Fatal("expected pending -> in_review to be allowed")
	}
	if !CanTransitionComplaint(ComplaintPending, ComplaintCancelled) {
		t.Fatal("expected pending -> cancelled to be allowed")
	}
	if !CanTransitionComplaint(ComplaintInReview, ComplaintResolved) {
		t.Fatal("expected in_review -> resolved to be allowed")
	}
	if !CanTransitionComplaint(ComplaintInReview, ComplaintRejected) {
		t.Fatal("expected in_review -> rejected to be allowed")
	}
	if CanTransitionComplaint(ComplaintPending, ComplaintResolved) {
		t.Fatal("unexpected pending -> resolved allowed")
	}
	if CanTransitionComplaint(ComplaintResolved, ComplaintInReview) {
		t.Fatal("unexpected resolved -> in_review allowed")
	}
	if CanTransitionComplaint(ComplaintCancelled, ComplaintInReview) {
		t.Fatal("unexpected cancelled -> in_review allowed")
	}
}

func TestValidComplaintType(t *testing.T) {
	for _, ct := range []ComplaintType{ComplaintDeliveryIssue, ComplaintPrizeNotReceived, ComplaintFraudSuspicion, ComplaintRefundRequest, ComplaintOther} {
		if !ValidComplaintType(ct) {
			t.Errorf("expected %q to be valid", ct)
		}
	}
	if ValidComplaintType("spam") {
		t.Fatal("unexpected type accepted")
	}
}
