package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// ExcelService handles the workbook export of an owner's bookings
type ExcelService struct {
	queries *QueryService
	now     func() time.Time
}

// NewExcelService creates a new Excel service
func NewExcelService(queries *QueryService) *ExcelService {
	return &ExcelService{queries: queries, now: time.Now}
}

// Export builds the workbook for an owner and returns it with a file name
func (s *ExcelService) Export(ctx context.Context, ownerID string) (*excelize.File, string, error) {
	set, err := s.queries.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}
	f, err := BuildWorkbook(set)
	if err != nil {
		return nil, "", utils.NewInternalError(fmt.Sprintf("failed to build workbook: %v", err))
	}
	filename := fmt.Sprintf("%s_%s.xlsx", utils.CleanFileName("TripDesk Export"), s.now().Format(utils.DateLayout))
	return f, filename, nil
}

// BuildWorkbook writes one sheet per collection plus the installment history
func BuildWorkbook(set *models.EntitySet) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	builders := []func(*excelize.File, *models.EntitySet, int) error{
		createClientSheet,
		createTripSheet,
		createPaymentSheet,
		createInstallmentSheet,
	}
	for _, build := range builders {
		if err := build(f, set, headerStyle); err != nil {
			return nil, err
		}
	}

	// Delete the default sheet
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	if index, err := f.GetSheetIndex("Clients"); err == nil {
		f.SetActiveSheet(index)
	}
	return f, nil
}

// writeSheet creates the sheet, styles the header row and writes the data rows
func writeSheet(f *excelize.File, name string, headers []string, rows [][]interface{}, style int, width float64) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", lastCol+"1", style); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(name, "A", lastCol, width)
}

func createClientSheet(f *excelize.File, set *models.EntitySet, style int) error {
	headers := []string{"Name", "CPF", "Secondary ID", "Birth Date", "Phone", "Email", "Address", "Trip", "Status", "Notes"}
	var rows [][]interface{}
	for _, c := range set.ClientList() {
		trip := ""
		if c.TripID != nil {
			trip = set.Trips[*c.TripID].Name
		}
		rows = append(rows, []interface{}{
			c.FullName, utils.FormatCPF(c.NationalID), c.SecondaryID, c.BirthDate.String(),
			utils.FormatPhone(c.Phone), c.Email, c.Address, trip, c.Status, c.Notes,
		})
	}
	return writeSheet(f, "Clients", headers, rows, style, 18)
}

func createTripSheet(f *excelize.File, set *models.EntitySet, style int) error {
	headers := []string{"Name", "Destination", "Departure", "Return", "Price", "Status", "Clients"}
	var rows [][]interface{}
	for _, t := range set.TripList() {
		rows = append(rows, []interface{}{
			t.Name, t.Destination, t.DepartureDate.String(), t.ReturnDate.String(),
			t.Price, t.Status, len(set.ClientsOfTrip(t.ID)),
		})
	}
	return writeSheet(f, "Trips", headers, rows, style, 15)
}

func createPaymentSheet(f *excelize.File, set *models.EntitySet, style int) error {
	headers := []string{"Payment ID", "Client", "Trip", "Total", "Paid", "Pending", "Fully Paid"}
	var rows [][]interface{}
	for _, p := range set.PaymentList() {
		view := paymentView(set, p)
		rows = append(rows, []interface{}{
			p.ID, view.ClientName, view.TripName, p.Total, view.Paid, view.Pending, view.FullyPaid,
		})
	}
	return writeSheet(f, "Payments", headers, rows, style, 15)
}

func createInstallmentSheet(f *excelize.File, set *models.EntitySet, style int) error {
	headers := []string{"Payment ID", "Client", "Date", "Amount", "Method", "Note"}
	var rows [][]interface{}
	for _, p := range set.PaymentList() {
		client := set.Clients[p.ClientID].FullName
		for _, inst := range p.Installments {
			rows = append(rows, []interface{}{
				p.ID, client, inst.Date.String(), inst.Amount, inst.Method, inst.Note,
			})
		}
	}
	return writeSheet(f, "Installments", headers, rows, style, 15)
}
