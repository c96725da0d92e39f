package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/core/service"
)

var (
	transferHeaders = []string{"ID", "PRODUCT", "QTY", "FROM", "TO", "STATUS", "REQUESTED BY"}
	auditHeaders    = []string{"ID", "LOCATION", "AUDITOR", "DATE", "STATUS", "COUNTED", "DISCREPANCIES"}
)

func transferRows(transfers ...domain.Transfer) [][]string {
	rows := make([][]string, 0, len(transfers))
	for _, t := range transfers {
		rows = append(rows, []string{t.ID, t.Product, strconv.Itoa(t.Quantity), t.FromLocation, t.ToLocation, string(t.Status), t.RequestedBy})
	}
	return rows
}

func auditRows(audits ...domain.Audit) [][]string {
	rows := make([][]string, 0, len(audits))
	for _, a := range audits {
		rows = append(rows, []string{
			a.ID, a.Location, a.Auditor, a.ScheduledDate.Format("2006-01-02"), string(a.Status),
			strconv.Itoa(a.ItemsCounted), strconv.Itoa(a.Discrepancies),
		})
	}
	return rows
}

func (h *CLIHandler) Transfers(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "add", "update", "status", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Transfers

	switch action {
	case "list":
		fs := newFlagSet("transfers list")
		query := fs.String("q", "", "substring to search for")
		status := fs.String("status", "", "Pending, In Transit, Completed or Cancelled")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}

		var transfers []domain.Transfer
		if *status != "" {
			transfers, err = svc.ByStatus(ctx, domain.TransferStatus(*status))
		} else {
			transfers, err = svc.Search(ctx, *query)
		}
		if err != nil {
			return err
		}
		return h.emit(transfers, transferHeaders, transferRows(transfers...))

	case "get":
		if err := requireArgs("transfers get", rest, 1); err != nil {
			return err
		}
		t, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(t, transferHeaders, transferRows(t))

	case "add", "update":
		id := ""
		if action == "update" {
			if err := requireArgs("transfers update", rest, 1); err != nil {
				return err
			}
			id, rest = rest[0], rest[1:]
		}

		fs := newFlagSet("transfers " + action)
		product := fs.String("product", "", "product name")
		quantity := fs.Int("quantity", 0, "units to move")
		from := fs.String("from", "", "source location name")
		to := fs.String("to", "", "destination location name")
		requestedBy := fs.String("by", "", "requester")
		notes := fs.String("notes", "", "notes")
		_, set, err := parseFlags(fs, rest)
		if err != nil {
			return err
		}

		var t domain.Transfer
		if action == "add" {
			t, err = svc.Add(ctx, domain.Transfer{
				Product:      *product,
				Quantity:     *quantity,
				FromLocation: *from,
				ToLocation:   *to,
				RequestedBy:  *requestedBy,
				Notes:        *notes,
			})
		} else {
			var patch service.TransferPatch
			if set["product"] {
				patch.Product = product
			}
			if set["quantity"] {
				patch.Quantity = quantity
			}
			if set["from"] {
				patch.FromLocation = from
			}
			if set["to"] {
				patch.ToLocation = to
			}
			if set["by"] {
				patch.RequestedBy = requestedBy
			}
			if set["notes"] {
				patch.Notes = notes
			}
			t, err = svc.Update(ctx, id, patch)
		}
		if err != nil {
			return err
		}
		return h.emit(t, transferHeaders, transferRows(t))

	case "status":
		if err := requireArgs("transfers status", rest, 2); err != nil {
			return err
		}
		t, err := svc.UpdateStatus(ctx, rest[0], domain.TransferStatus(strings.Join(rest[1:], " ")))
		if err != nil {
			return err
		}
		return h.emit(t, transferHeaders, transferRows(t))

	default:
		if err := requireArgs("transfers delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("transfer", rest[0], ok)
	}
}

func (h *CLIHandler) Audits(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "schedule", "update", "start", "count", "complete", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Audits

	switch action {
	case "list":
		fs := newFlagSet("audits list")
		query := fs.String("q", "", "substring to search for")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		audits, err := svc.Search(ctx, *query)
		if err != nil {
			return err
		}
		return h.emit(audits, auditHeaders, auditRows(audits...))

	case "get":
		if err := requireArgs("audits get", rest, 1); err != nil {
			return err
		}
		a, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		if h.format == "json" {
			return writeJSON(h.out, a)
		}
		if err := writeTable(h.out, auditHeaders, auditRows(a)); err != nil {
			return err
		}
		lines := make([][]string, 0, len(a.Lines))
		for _, l := range a.Lines {
			counted, variance := "-", "-"
			if l.Checked {
				counted, variance = strconv.Itoa(l.Counted), strconv.Itoa(l.Variance())
			}
			lines = append(lines, []string{l.Product, strconv.Itoa(l.Expected), counted, variance})
		}
		h.out.Write([]byte("\n"))
		return writeTable(h.out, []string{"PRODUCT", "EXPECTED", "COUNTED", "VARIANCE"}, lines)

	case "schedule":
		fs := newFlagSet("audits schedule")
		location := fs.String("location", "", "location name")
		auditor := fs.String("auditor", "", "auditor name")
		date := fs.String("date", "", "scheduled date, YYYY-MM-DD (default today)")
		notes := fs.String("notes", "", "notes")
		var expected expectations
		fs.Var(&expected, "expect", "product=quantity, repeatable")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}

		scheduled := time.Now().UTC()
		if *date != "" {
			scheduled, err = time.Parse("2006-01-02", *date)
			if err != nil {
				return usageError("invalid date %q", *date)
			}
		}
		a, err := svc.Schedule(ctx, domain.Audit{
			Location:      *location,
			Auditor:       *auditor,
			ScheduledDate: scheduled,
			Lines:         expected,
			Notes:         *notes,
		})
		if err != nil {
			return err
		}
		return h.emit(a, auditHeaders, auditRows(a))

	case "update":
		if err := requireArgs("audits update", rest, 1); err != nil {
			return err
		}
		fs := newFlagSet("audits update")
		location := fs.String("location", "", "location name")
		auditor := fs.String("auditor", "", "auditor name")
		date := fs.String("date", "", "scheduled date, YYYY-MM-DD")
		notes := fs.String("notes", "", "notes")
		var expected expectations
		fs.Var(&expected, "expect", "product=quantity, repeatable, replaces the expected lines")
		_, set, err := parseFlags(fs, rest[1:])
		if err != nil {
			return err
		}

		var patch service.AuditPatch
		if set["location"] {
			patch.Location = location
		}
		if set["auditor"] {
			patch.Auditor = auditor
		}
		if set["notes"] {
			patch.Notes = notes
		}
		if set["date"] {
			scheduled, err := time.Parse("2006-01-02", *date)
			if err != nil {
				return usageError("invalid date %q", *date)
			}
			patch.ScheduledDate = &scheduled
		}
		if set["expect"] {
			lines := []domain.AuditLine(expected)
			patch.Lines = &lines
		}
		a, err := svc.Update(ctx, rest[0], patch)
		if err != nil {
			return err
		}
		return h.emit(a, auditHeaders, auditRows(a))

	case "start":
		if err := requireArgs("audits start", rest, 1); err != nil {
			return err
		}
		a, err := svc.Start(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(a, auditHeaders, auditRows(a))

	case "count":
		if err := requireArgs("audits count", rest, 3); err != nil {
			return err
		}
		counted, err := strconv.Atoi(rest[2])
		if err != nil {
			return usageError("count must be an integer, got %q", rest[2])
		}
		a, err := svc.RecordCount(ctx, rest[0], rest[1], counted)
		if err != nil {
			return err
		}
		return h.emit(a, auditHeaders, auditRows(a))

	case "complete":
		if err := requireArgs("audits complete", rest, 1); err != nil {
			return err
		}
		a, err := svc.Complete(ctx, rest[0], strings.Join(rest[1:], " "))
		if err != nil {
			return err
		}
		return h.emit(a, auditHeaders, auditRows(a))

	default:
		if err := requireArgs("audits delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("audit", rest[0], ok)
	}
}

// expectations collects repeated -expect product=quantity flags.
type expectations []domain.AuditLine

func (e *expectations) String() string {
	parts := make([]string, 0, len(*e))
	for _, l := range *e {
		parts = append(parts, l.Product+"="+strconv.Itoa(l.Expected))
	}
	return strings.Join(parts, ",")
}

func (e *expectations) Set(value string) error {
	product, qty, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(product) == "" {
		return usageError("expect wants product=quantity, got %q", value)
	}
	n, err := strconv.Atoi(qty)
	if err != nil || n < 0 {
		return usageError("expected quantity must be a non-negative integer, got %q", qty)
	}
	*e = append(*e, domain.AuditLine{Product: strings.TrimSpace(product), Expected: n})
	return nil
}
