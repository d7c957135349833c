package entity

import "testing"

func TestAssignmentTransitionsForwardOnly(t *testing.T) {
	if !CanTransitionAssignment(AssignmentStatusPending, AssignmentStatusInProgress) {
		t.Fatalf("pending -> in_progress must be legal")
	}
	if !CanTransitionAssignment(AssignmentStatusInProgress, AssignmentStatusDone) {
		t.Fatalf("in_progress -> done must be legal")
	}

	backward := [][2]string{
		{AssignmentStatusInProgress, AssignmentStatusPending},
		{AssignmentStatusDone, AssignmentStatusInProgress},
		{AssignmentStatusDone, AssignmentStatusPending},
	}
	for _, m := range backward {
		if CanTransitionAssignment(m[0], m[1]) {
			t.Fatalf("backward move %s -> %s must be rejected", m[0], m[1])
		}
	}
}

func TestAssignmentDoneIsTerminal(t *testing.T) {
	for _, to := range []string{AssignmentStatusPending, AssignmentStatusInProgress, AssignmentStatusDone} {
		if CanTransitionAssignment(AssignmentStatusDone, to) {
			t.Fatalf("done must have no outgoing transition, got done -> %s", to)
		}
	}
}

func TestOrderTransitions(t *testing.T) {
	chain := []string{OrderStatusPending, OrderStatusInProgress, OrderStatusAwaitingApproval, OrderStatusCompleted}
	for i := 0; i < len(chain)-1; i++ {
		if !CanTransitionOrder(chain[i], chain[i+1]) {
			t.Fatalf("%s -> %s must be legal", chain[i], chain[i+1])
		}
	}
	if CanTransitionOrder(OrderStatusCompleted, OrderStatusPending) {
		t.Fatalf("completed is terminal")
	}
	if CanTransitionOrder(OrderStatusPending, OrderStatusCompleted) {
		t.Fatalf("intake cannot skip straight to completed")
	}
}
