package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rl1809/invstrar/internal/core/domain"
)

func TestAuditLifecycle(t *testing.T) {
	svc := NewAuditService(newMockStore(), Options{})
	ctx := context.Background()

	audit, err := svc.Schedule(ctx, domain.Audit{
		Location: "Main Warehouse",
		Auditor:  "Dana Reyes",
		Lines: []domain.AuditLine{
			{Product: "Wireless Mouse", Expected: 150},
			{Product: "USB-C Cable", Expected: 25},
		},
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if audit.Status != domain.AuditStatusScheduled {
		t.Errorf("expected Scheduled, got %s", audit.Status)
	}

	audit, err = svc.RecordCount(ctx, audit.ID, "wireless mouse", 148)
	if err != nil {
		t.Fatalf("record count: %v", err)
	}
	if audit.Status != domain.AuditStatusInProgress {
		t.Errorf("expected counting to start the audit, got %s", audit.Status)
	}

	audit, _ = svc.RecordCount(ctx, audit.ID, "USB-C Cable", 25)
	audit, _ = svc.RecordCount(ctx, audit.ID, "Desk Mat", 4)

	if len(audit.Lines) != 3 {
		t.Errorf("expected unlisted product to add a line, got %d lines", len(audit.Lines))
	}
	if audit.ItemsCounted != 177 {
		t.Errorf("expected 177 counted, got %d", audit.ItemsCounted)
	}
	if audit.Discrepancies != 2 {
		t.Errorf("expected 2 discrepancies, got %d", audit.Discrepancies)
	}

	audit, err = svc.Complete(ctx, audit.ID, "two variances")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if audit.Status != domain.AuditStatusCompleted || audit.Notes != "two variances" {
		t.Errorf("unexpected completed audit %+v", audit)
	}

	if _, err := svc.RecordCount(ctx, audit.ID, "Desk Mat", 5); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected completed audit to reject counts, got %v", err)
	}
	if _, err := svc.Complete(ctx, audit.ID, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected second complete to fail, got %v", err)
	}
}

func TestAuditStart(t *testing.T) {
	svc := NewAuditService(newMockStore(), Options{})
	ctx := context.Background()

	audit, _ := svc.Schedule(ctx, domain.Audit{Location: "Downtown Store", Auditor: "Sam Okafor"})

	started, err := svc.Start(ctx, audit.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Status != domain.AuditStatusInProgress {
		t.Errorf("expected In Progress, got %s", started.Status)
	}
	if _, err := svc.Start(ctx, audit.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAuditSchedule_Validation(t *testing.T) {
	svc := NewAuditService(newMockStore(), Options{})

	if _, err := svc.Schedule(context.Background(), domain.Audit{Location: "Main Warehouse"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.RecordCount(context.Background(), "any", "Widget", -1); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative count, got %v", err)
	}
}

func TestAuditSchedule_FreshAuditHasNoDiscrepancies(t *testing.T) {
	svc := NewAuditService(newMockStore(), Options{})
	ctx := context.Background()

	audit, err := svc.Schedule(ctx, domain.Audit{
		Location: "Main Warehouse",
		Auditor:  "Dana Reyes",
		Lines: []domain.AuditLine{
			{Product: "Wireless Mouse", Expected: 150},
			{Product: "USB-C Cable", Expected: 25},
			{Product: "Monitor Stand", Expected: 64},
		},
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if audit.Discrepancies != 0 || audit.ItemsCounted != 0 {
		t.Errorf("expected nothing counted on a fresh audit, got %d counted, %d discrepancies", audit.ItemsCounted, audit.Discrepancies)
	}

	audit, _ = svc.RecordCount(ctx, audit.ID, "USB-C Cable", 25)
	audit, err = svc.Complete(ctx, audit.ID, "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if audit.Discrepancies != 0 || audit.ItemsCounted != 25 {
		t.Errorf("expected uncounted lines ignored, got %d counted, %d discrepancies", audit.ItemsCounted, audit.Discrepancies)
	}
}

func TestAuditUpdate(t *testing.T) {
	svc := NewAuditService(newMockStore(), Options{})
	ctx := context.Background()

	audit, _ := svc.Schedule(ctx, domain.Audit{
		Location: "Main Warehouse",
		Auditor:  "Dana Reyes",
		Lines: []domain.AuditLine{
			{Product: "Wireless Mouse", Expected: 150},
			{Product: "USB-C Cable", Expected: 25},
		},
	})
	audit, _ = svc.RecordCount(ctx, audit.ID, "Wireless Mouse", 148)

	auditor := "Sam Okafor"
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	lines := []domain.AuditLine{
		{Product: "wireless mouse", Expected: 148},
		{Product: "Desk Mat", Expected: 10},
	}
	updated, err := svc.Update(ctx, audit.ID, AuditPatch{Auditor: &auditor, ScheduledDate: &date, Lines: &lines})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Auditor != "Sam Okafor" || !updated.ScheduledDate.Equal(date) || updated.Location != "Main Warehouse" {
		t.Errorf("unexpected fields after update %+v", updated)
	}
	if len(updated.Lines) != 2 || !updated.Lines[0].Checked || updated.Lines[0].Counted != 148 {
		t.Fatalf("expected the mouse count to be kept, got %+v", updated.Lines)
	}
	if updated.Lines[1].Checked {
		t.Error("expected new line to be uncounted")
	}
	if updated.ItemsCounted != 148 || updated.Discrepancies != 0 {
		t.Errorf("expected recount against new expectations, got %d counted, %d discrepancies", updated.ItemsCounted, updated.Discrepancies)
	}

	blank := "  "
	if _, err := svc.Update(ctx, audit.ID, AuditPatch{Location: &blank}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank location, got %v", err)
	}
	bad := []domain.AuditLine{{Product: "Bolt", Expected: -1}}
	if _, err := svc.Update(ctx, audit.ID, AuditPatch{Lines: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for negative expected count, got %v", err)
	}

	svc.Complete(ctx, audit.ID, "")
	notes := "late edit"
	if _, err := svc.Update(ctx, audit.ID, AuditPatch{Notes: &notes}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected completed audit to refuse edits, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", AuditPatch{Notes: &notes}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
