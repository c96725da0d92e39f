package domain

import "testing"

func TestTransferStatus_CanTransition(t *testing.T) {
	allowed := [][2]TransferStatus{
		{TransferStatusPending, TransferStatusInTransit},
		{TransferStatusPending, TransferStatusCancelled},
		{TransferStatusInTransit, TransferStatusCompleted},
		{TransferStatusInTransit, TransferStatusCancelled},
	}
	for _, tr := range allowed {
		if !tr[0].CanTransition(tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]TransferStatus{
		{TransferStatusPending, TransferStatusCompleted},
		{TransferStatusCompleted, TransferStatusPending},
		{TransferStatusCancelled, TransferStatusInTransit},
	}
	for _, tr := range denied {
		if tr[0].CanTransition(tr[1]) {
			t.Errorf("expected %s -> %s to be denied", tr[0], tr[1])
		}
	}
}

func TestTransferStatus_Valid(t *testing.T) {
	for _, s := range []TransferStatus{TransferStatusPending, TransferStatusInTransit, TransferStatusCompleted, TransferStatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []TransferStatus{"", "pending", "Lost"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
