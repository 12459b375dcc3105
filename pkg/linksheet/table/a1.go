package table

import (
	"fmt"
	"strings"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"github.com/xuri/excelize/v2"
)

// FormatRange renders a region in A1 notation qualified by sheet name,
// e.g. 'Data'!A1:E12 or 'Make Short Url'!B2.
func FormatRange(sheetName string, r models.Region) (string, error) {
	start, err := excelize.CoordinatesToCellName(r.C1, r.R1)
	if err != nil {
		return "", err
	}
	ref := start
	if r.R2 != r.R1 || r.C2 != r.C1 {
		end, err := excelize.CoordinatesToCellName(r.C2, r.R2)
		if err != nil {
			return "", err
		}
		ref = start + ":" + end
	}
	if sheetName == "" {
		return ref, nil
	}
	return QuoteSheet(sheetName) + "!" + ref, nil
}

// QuoteSheet quotes a sheet name for use in an A1 reference. Names are
// always quoted so that ones like Q1 are not read as cell references.
func QuoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// ParseRange parses a reference string into sheet name and region.
// Format: 'Sheet Name'!$A$1:$D$10, Sheet!A1:D10 or A1.
func ParseRange(ref string) (string, models.Region, error) {
	var sheetName string
	rangeStr := strings.TrimSpace(ref)

	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		sheetName = rangeStr[:idx]
		rangeStr = rangeStr[idx+1:]
		if strings.HasPrefix(sheetName, "'") && strings.HasSuffix(sheetName, "'") && len(sheetName) >= 2 {
			sheetName = strings.ReplaceAll(sheetName[1:len(sheetName)-1], "''", "'")
		}
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return "", models.Region{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", models.Region{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	region := models.Region{R1: startRow, C1: startCol, R2: startRow, C2: startCol}

	if len(parts) == 2 {
		endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return "", models.Region{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
		region.R2, region.C2 = endRow, endCol
	}

	return sheetName, region, nil
}
