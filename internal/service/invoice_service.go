package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/pkg/config"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/export"
	"github.com/carebridge/carebridge-api/pkg/timeutil"
)

type invoiceTimesheetSource interface {
	GetByIDs(ctx context.Context, workerID string, ids []string) ([]models.TimesheetEntry, error)
}

type invoiceUserSource interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// InvoiceService derives invoices from timesheet entries. Invoices are
// documents, not records: nothing here writes to the database.
type InvoiceService struct {
	timesheets invoiceTimesheetSource
	users      invoiceUserSource
	cfg        config.InvoicingConfig
	pdf        *export.PDFExporter
	logger     *zap.Logger
	now        func() time.Time
}

// NewInvoiceService constructs the service.
func NewInvoiceService(timesheets invoiceTimesheetSource, users invoiceUserSource, cfg config.InvoicingConfig, logger *zap.Logger) *InvoiceService {
	if cfg.DefaultHourlyRate <= 0 {
		cfg.DefaultHourlyRate = 80
	}
	if cfg.DueInDays <= 0 {
		cfg.DueInDays = 14
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		timesheets: timesheets,
		users:      users,
		cfg:        cfg,
		pdf:        export.NewPDFExporter(),
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateInvoiceRequest selects the entries to bill and the client details
// to print.
type GenerateInvoiceRequest struct {
	EntryIDs   []string            `json:"entry_ids"`
	Client     models.InvoiceParty `json:"client"`
	HourlyRate *float64            `json:"hourly_rate,omitempty"`
	Bank       *models.BankDetails `json:"bank_details,omitempty"`
}

// Generate builds an invoice for the worker from the selected entries.
// Selecting no billable entries aborts with a validation error so an empty
// document is never produced.
func (s *InvoiceService) Generate(ctx context.Context, workerID string, req GenerateInvoiceRequest) (*models.Invoice, error) {
	if workerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "worker id is required")
	}
	if len(req.EntryIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "select at least one timesheet entry")
	}

	entries, err := s.timesheets.GetByIDs(ctx, workerID, req.EntryIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timesheet entries")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no matching timesheet entries for this worker")
	}

	worker, err := s.users.FindByID(ctx, workerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load worker")
	}

	rate := s.cfg.DefaultHourlyRate
	if req.HourlyRate != nil && *req.HourlyRate > 0 {
		rate = *req.HourlyRate
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	issued := s.now()
	invoice := &models.Invoice{
		InvoiceNumber: invoiceNumber(issued),
		InvoiceDate:   issued.Format("2006-01-02"),
		DueDate:       issued.AddDate(0, 0, s.cfg.DueInDays).Format("2006-01-02"),
		Client:        req.Client,
		Worker: models.InvoiceParty{
			Name:  worker.FullName,
			ABN:   worker.ABN,
			Phone: worker.Phone,
			Email: &worker.Email,
		},
		TransportFee: s.cfg.TransportFee,
		Bank:         req.Bank,
	}

	for _, entry := range entries {
		hours := entryHours(entry)
		amount := round2(hours * rate)
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			ID:          entry.ID,
			Date:        entry.Date,
			Description: fmt.Sprintf("%s - %s", entry.Title, timeutil.FormatDate(entry.Date)),
			Hours:       entry.TotalHours,
			Rate:        rate,
			Amount:      amount,
		})
		invoice.Subtotal = round2(invoice.Subtotal + amount)
	}
	invoice.Total = round2(invoice.Subtotal + invoice.TransportFee)

	return invoice, nil
}

// RenderPDF lays the invoice out as a PDF document.
func (s *InvoiceService) RenderPDF(invoice *models.Invoice) ([]byte, error) {
	data := export.Dataset{
		Headers: []string{"Date", "Description", "Hours", "Rate", "Amount"},
		Meta: []string{
			fmt.Sprintf("Invoice %s", invoice.InvoiceNumber),
			fmt.Sprintf("Issued %s, due %s", timeutil.FormatDate(invoice.InvoiceDate), timeutil.FormatDate(invoice.DueDate)),
			fmt.Sprintf("Billed to %s", invoice.Client.Name),
			fmt.Sprintf("From %s", invoice.Worker.Name),
		},
	}
	for _, item := range invoice.Items {
		data.Rows = append(data.Rows, map[string]string{
			"Date":        timeutil.FormatDate(item.Date),
			"Description": item.Description,
			"Hours":       item.Hours,
			"Rate":        fmt.Sprintf("$%.2f", item.Rate),
			"Amount":      fmt.Sprintf("$%.2f", item.Amount),
		})
	}
	data.Footer = []map[string]string{
		{"Description": "Subtotal", "Amount": fmt.Sprintf("$%.2f", invoice.Subtotal)},
		{"Description": "Transport fee", "Amount": fmt.Sprintf("$%.2f", invoice.TransportFee)},
		{"Description": "Total", "Amount": fmt.Sprintf("$%.2f", invoice.Total)},
	}
	return s.pdf.Render(data, "Tax Invoice")
}

// invoiceNumber yields "INV-<year>-<8 hex chars>". Uniqueness comes from the
// UUID prefix; the year keeps numbers human-sortable.
func invoiceNumber(issued time.Time) string {
	prefix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%d-%s", issued.Year(), prefix)
}

// entryHours reads the entry's hours label, e.g. "4 hours" or "4.5 hours",
// falling back to the clock range when the label does not parse.
func entryHours(entry models.TimesheetEntry) float64 {
	fields := strings.Fields(entry.TotalHours)
	if len(fields) > 0 {
		if hours, err := strconv.ParseFloat(fields[0], 64); err == nil && hours > 0 {
			return hours
		}
	}
	return timeutil.CalculateDuration(entry.StartTime, entry.EndTime)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
