package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
	"github.com/carebridge/carebridge-api/pkg/config"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type mockTimesheetSource struct {
	mock.Mock
}

func (m *mockTimesheetSource) GetByIDs(ctx context.Context, workerID string, ids []string) ([]models.TimesheetEntry, error) {
	args := m.Called(ctx, workerID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TimesheetEntry), args.Error(1)
}

type mockUserSource struct {
	mock.Mock
}

func (m *mockUserSource) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func invoicingConfig() config.InvoicingConfig {
	return config.InvoicingConfig{DefaultHourlyRate: 80, TransportFee: 50, DueInDays: 14}
}

func invoiceEntry(id, hours string) models.TimesheetEntry {
	return models.TimesheetEntry{
		ID:         id,
		WorkerID:   "w1",
		Title:      "Community access",
		ClientName: "Sarah M.",
		Date:       "2025-04-08",
		StartTime:  "9:00",
		EndTime:    "13:00",
		TotalHours: hours,
		Status:     models.TimesheetApproved,
	}
}

func newInvoiceService(ts *mockTimesheetSource, us *mockUserSource) *InvoiceService {
	svc := NewInvoiceService(ts, us, invoicingConfig(), nil)
	svc.now = func() time.Time { return time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGenerateInvoiceTotals(t *testing.T) {
	ts := new(mockTimesheetSource)
	us := new(mockUserSource)
	ts.On("GetByIDs", mock.Anything, "w1", []string{"t1", "t2"}).Return([]models.TimesheetEntry{
		invoiceEntry("t1", "4 hours"),
		invoiceEntry("t2", "2.5 hours"),
	}, nil).Once()
	us.On("FindByID", mock.Anything, "w1").Return(&models.User{ID: "w1", FullName: "Jordan Lee", Email: "jordan@example.com"}, nil).Once()

	svc := newInvoiceService(ts, us)
	invoice, err := svc.Generate(context.Background(), "w1", GenerateInvoiceRequest{
		EntryIDs: []string{"t1", "t2"},
		Client:   models.InvoiceParty{Name: "Sarah M."},
	})

	require.NoError(t, err)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, "Community access - Apr 08, 2025", invoice.Items[0].Description)
	assert.Equal(t, 320.0, invoice.Items[0].Amount)
	assert.Equal(t, 200.0, invoice.Items[1].Amount)
	assert.Equal(t, 520.0, invoice.Subtotal)
	assert.Equal(t, 50.0, invoice.TransportFee)
	assert.Equal(t, 570.0, invoice.Total)
	assert.Equal(t, "Jordan Lee", invoice.Worker.Name)
}

func TestGenerateInvoiceDatesAndNumber(t *testing.T) {
	ts := new(mockTimesheetSource)
	us := new(mockUserSource)
	ts.On("GetByIDs", mock.Anything, "w1", []string{"t1"}).Return([]models.TimesheetEntry{invoiceEntry("t1", "4 hours")}, nil).Once()
	us.On("FindByID", mock.Anything, "w1").Return(&models.User{ID: "w1", FullName: "Jordan Lee"}, nil).Once()

	svc := newInvoiceService(ts, us)
	invoice, err := svc.Generate(context.Background(), "w1", GenerateInvoiceRequest{
		EntryIDs: []string{"t1"},
		Client:   models.InvoiceParty{Name: "Sarah M."},
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-04-10", invoice.InvoiceDate)
	assert.Equal(t, "2025-04-24", invoice.DueDate)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-2025-"))
	assert.Len(t, invoice.InvoiceNumber, len("INV-2025-")+8)
}

func TestGenerateInvoiceNoSelectionAborts(t *testing.T) {
	svc := newInvoiceService(new(mockTimesheetSource), new(mockUserSource))

	_, err := svc.Generate(context.Background(), "w1", GenerateInvoiceRequest{})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestGenerateInvoiceNoMatchingEntriesAborts(t *testing.T) {
	ts := new(mockTimesheetSource)
	ts.On("GetByIDs", mock.Anything, "w1", []string{"other"}).Return([]models.TimesheetEntry{}, nil).Once()

	svc := newInvoiceService(ts, new(mockUserSource))
	_, err := svc.Generate(context.Background(), "w1", GenerateInvoiceRequest{EntryIDs: []string{"other"}})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestGenerateInvoiceCustomRateAndHoursFallback(t *testing.T) {
	ts := new(mockTimesheetSource)
	us := new(mockUserSource)
	// "all day" does not parse; 9:00-13:00 gives 4 hours.
	ts.On("GetByIDs", mock.Anything, "w1", []string{"t1"}).Return([]models.TimesheetEntry{invoiceEntry("t1", "all day")}, nil).Once()
	us.On("FindByID", mock.Anything, "w1").Return(&models.User{ID: "w1", FullName: "Jordan Lee"}, nil).Once()

	rate := 95.0
	svc := newInvoiceService(ts, us)
	invoice, err := svc.Generate(context.Background(), "w1", GenerateInvoiceRequest{
		EntryIDs:   []string{"t1"},
		Client:     models.InvoiceParty{Name: "Sarah M."},
		HourlyRate: &rate,
	})

	require.NoError(t, err)
	assert.Equal(t, 380.0, invoice.Items[0].Amount)
}

func TestRenderInvoicePDF(t *testing.T) {
	svc := newInvoiceService(new(mockTimesheetSource), new(mockUserSource))
	invoice := &models.Invoice{
		InvoiceNumber: "INV-2025-AB12CD34",
		InvoiceDate:   "2025-04-10",
		DueDate:       "2025-04-24",
		Client:        models.InvoiceParty{Name: "Sarah M."},
		Worker:        models.InvoiceParty{Name: "Jordan Lee"},
		Items: []models.InvoiceItem{
			{ID: "t1", Date: "2025-04-08", Description: "Community access", Hours: "4 hours", Rate: 80, Amount: 320},
		},
		Subtotal:     320,
		TransportFee: 50,
		Total:        370,
	}

	pdf, err := svc.RenderPDF(invoice)

	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
