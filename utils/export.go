package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"leadforge/models"
)

// LeadsWorkbook renders leads into a spreadsheet for download.
func LeadsWorkbook(leads []models.Lead) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Leads"

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headers := []string{"Name", "Company", "Email", "Status", "Last Contacted", "Follow-ups", "Tags"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, lead := range leads {
		tags := ""
		for i, t := range lead.Tags {
			if i > 0 {
				tags += ", "
			}
			tags += string(t)
		}
		values := []interface{}{lead.Name, lead.Company, lead.Email, string(lead.Status), lead.LastContacted, lead.FollowUpCount, tags}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
