package utils

import (
	"encoding/csv"
	"io"
	"strconv"

	"vistoria/internal/models"
)

// CSV headers for report downloads. Column order is a compatibility surface
// for spreadsheet consumers; do not reorder.
var inspectionCSVHeader = []string{
	"ID", "Title", "Status", "Start Date", "End Date", "Elapsed Minutes", "Remarks",
	"Vehicle Name", "Plate", "Brand", "Model", "Year", "Owner",
	"Inspector Name", "Inspector Email",
	"Checklist Total", "Checklist Approved", "Checklist Rejected", "Checklist N/A",
}

var inspectorCSVHeader = []string{
	"ID", "Name", "Email", "Total", "Approved", "Rejected",
	"Pending", "In Progress", "Cancelled", "Mean Elapsed Minutes", "Approval Rate",
}

func WriteInspectionsCSV(w io.Writer, rows []*models.InspectionExportRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(inspectionCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Title,
			row.Status,
			row.StartDate,
			row.EndDate,
			strconv.Itoa(row.ElapsedMinutes),
			row.Remarks,
			row.Vehicle.Name,
			row.Vehicle.Plate,
			row.Vehicle.Brand,
			row.Vehicle.Model,
			strconv.Itoa(row.Vehicle.Year),
			row.Vehicle.Owner,
			row.Inspector.Name,
			row.Inspector.Email,
			strconv.Itoa(row.Checklist.Total),
			strconv.Itoa(row.Checklist.Approved),
			strconv.Itoa(row.Checklist.Rejected),
			strconv.Itoa(row.Checklist.NotApplicable),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func WriteInspectorsCSV(w io.Writer, rows []*models.InspectorExportRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(inspectorCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Name,
			row.Email,
			strconv.Itoa(row.Total),
			strconv.Itoa(row.Approved),
			strconv.Itoa(row.Rejected),
			strconv.Itoa(row.Pending),
			strconv.Itoa(row.InProgress),
			strconv.Itoa(row.Cancelled),
			strconv.Itoa(row.MeanElapsedMinutes),
			strconv.Itoa(row.ApprovalRate),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
