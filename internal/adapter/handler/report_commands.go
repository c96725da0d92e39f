package handler

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/core/service"
)

var dashboardCards = []struct {
	key   string
	label string
}{
	{"totalItems", "Total items"},
	{"totalUnits", "Total units"},
	{"lowStock", "Low stock"},
	{"outOfStock", "Out of stock"},
	{"locations", "Locations"},
	{"pendingTransfers", "Pending transfers"},
	{"openAudits", "Open audits"},
	{"activeVendors", "Active vendors"},
	{"inventoryValue", "Inventory value"},
}

func (h *CLIHandler) money(d decimal.Decimal) string {
	return h.printer.Sprintf("%.2f", d.InexactFloat64())
}

func (h *CLIHandler) Dashboard(ctx context.Context, args []string) error {
	d, err := h.services.Dashboard.Dashboard(ctx)
	if err != nil {
		return err
	}
	if h.format == "json" {
		return writeJSON(h.out, d)
	}

	s := d.Stats
	values := map[string]string{
		"totalItems":       h.printer.Sprintf("%d", s.TotalItems),
		"totalUnits":       h.printer.Sprintf("%d", s.TotalUnits),
		"lowStock":         h.printer.Sprintf("%d", s.LowStock),
		"outOfStock":       h.printer.Sprintf("%d", s.OutOfStock),
		"locations":        h.printer.Sprintf("%d", s.Locations),
		"pendingTransfers": h.printer.Sprintf("%d", s.PendingTransfers),
		"openAudits":       h.printer.Sprintf("%d", s.OpenAudits),
		"activeVendors":    h.printer.Sprintf("%d", s.ActiveVendors),
		"inventoryValue":   h.money(s.InventoryValue),
	}

	rows := make([][]string, 0, len(dashboardCards))
	for _, card := range dashboardCards {
		trend := "-"
		if t, ok := d.Trends[card.key]; ok {
			trend = h.printer.Sprintf("%+.1f%% %s", t.Change, t.Direction)
		}
		rows = append(rows, []string{card.label, values[card.key], trend})
	}
	if err := writeTable(h.out, []string{"METRIC", "VALUE", "TREND"}, rows); err != nil {
		return err
	}
	if d.BaselineAt != nil {
		_, err = fmt.Fprintf(h.out, "\ntrends against backup of %s\n", d.BaselineAt.Format(time.RFC3339))
	}
	return err
}

func (h *CLIHandler) Report(ctx context.Context, args []string) error {
	snap, err := h.services.Snapshot(ctx)
	if err != nil {
		return err
	}
	r := service.BuildReport(snap)
	if h.format == "json" {
		return writeJSON(h.out, r)
	}

	p := h.printer
	p.Fprintf(h.out, "Inventory report, %s\n\n", r.GeneratedAt.Format(time.RFC1123))

	statusRows := [][]string{}
	for _, st := range []domain.StockStatus{domain.StockStatusInStock, domain.StockStatusLowStock, domain.StockStatusOutOfStock} {
		statusRows = append(statusRows, []string{string(st), p.Sprintf("%d", r.StockStatus[st])})
	}
	if err := writeTable(h.out, []string{"STOCK STATUS", "ITEMS"}, statusRows); err != nil {
		return err
	}

	for _, section := range []struct {
		title string
		lines []service.ValueLine
	}{
		{"CATEGORY", r.ValueByCategory},
		{"LOCATION", r.ValueByLocation},
	} {
		fmt.Fprintln(h.out)
		rows := make([][]string, 0, len(section.lines)+1)
		for _, l := range section.lines {
			rows = append(rows, []string{l.Name, p.Sprintf("%d", l.Items), p.Sprintf("%d", l.Units), h.money(l.Value)})
		}
		rows = append(rows, []string{"Total", "", "", h.money(r.TotalValue)})
		if err := writeTable(h.out, []string{section.title, "ITEMS", "UNITS", "VALUE"}, rows); err != nil {
			return err
		}
	}

	fmt.Fprintln(h.out)
	statuses := make([]string, 0, len(r.TransfersByStatus))
	for st := range r.TransfersByStatus {
		statuses = append(statuses, string(st))
	}
	sort.Strings(statuses)
	transferRows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		transferRows = append(transferRows, []string{st, p.Sprintf("%d", r.TransfersByStatus[domain.TransferStatus(st)])})
	}
	if err := writeTable(h.out, []string{"TRANSFER STATUS", "COUNT"}, transferRows); err != nil {
		return err
	}

	p.Fprintf(h.out, "\nCompleted audits: %d, discrepancies: %d\n", r.CompletedAudits, r.AuditDiscrepancies)

	if len(r.Reorder) == 0 {
		_, err = fmt.Fprintln(h.out, "\nNothing to reorder.")
		return err
	}
	fmt.Fprintln(h.out, "\nReorder:")
	return writeTable(h.out, inventoryHeaders, inventoryRows(r.Reorder...))
}

type archivedView struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

func archivedRows(archives ...domain.ArchivedBackup) ([]archivedView, [][]string) {
	views := make([]archivedView, 0, len(archives))
	rows := make([][]string, 0, len(archives))
	for _, a := range archives {
		views = append(views, archivedView{a.ID, a.Label, a.Backup.Version, a.Backup.Timestamp, a.CreatedAt})
		rows = append(rows, []string{a.ID, a.Label, a.Backup.Version, a.CreatedAt.Format(time.RFC3339)})
	}
	return views, rows
}

var archiveHeaders = []string{"ID", "LABEL", "VERSION", "CREATED"}

func (h *CLIHandler) restored(keys []string) error {
	if h.format == "json" {
		return writeJSON(h.out, map[string]any{"restored": keys})
	}
	_, err := h.printer.Fprintf(h.out, "restored %d key(s): %v\n", len(keys), keys)
	return err
}

func (h *CLIHandler) Backup(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "export", "import", "clear", "archive", "archives", "restore-archive")
	if err != nil {
		return err
	}
	svc := h.services.Backup

	switch action {
	case "export":
		fs := newFlagSet("backup export")
		path := fs.String("o", "", "write to file instead of stdout")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		document, err := svc.ExportJSON(ctx)
		if err != nil {
			return err
		}
		if *path == "" {
			_, err = h.out.Write(append(document, '\n'))
			return err
		}
		if err := os.WriteFile(*path, document, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		_, err = fmt.Fprintf(h.out, "backup written to %s\n", *path)
		return err

	case "import":
		if err := requireArgs("backup import", rest, 1); err != nil {
			return err
		}
		document, err := os.ReadFile(rest[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		keys, err := svc.Restore(ctx, document)
		if err != nil {
			return err
		}
		return h.restored(keys)

	case "clear":
		if err := svc.Clear(ctx); err != nil {
			return err
		}
		_, err = fmt.Fprintln(h.out, "all data cleared")
		return err

	case "archive":
		fs := newFlagSet("backup archive")
		label := fs.String("label", "manual", "archive label")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		archived, err := svc.Archive(ctx, *label)
		if err != nil {
			return err
		}
		views, rows := archivedRows(archived)
		return h.emit(views[0], archiveHeaders, rows)

	case "archives":
		fs := newFlagSet("backup archives")
		limit := fs.Int("limit", 20, "number of archives to list")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		archives, err := svc.ListArchived(ctx, *limit)
		if err != nil {
			return err
		}
		views, rows := archivedRows(archives...)
		return h.emit(views, archiveHeaders, rows)

	default:
		id := ""
		if len(rest) > 0 {
			id = rest[0]
		}
		keys, err := svc.RestoreArchived(ctx, id)
		if err != nil {
			return err
		}
		return h.restored(keys)
	}
}
