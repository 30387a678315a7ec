package statement

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"gastos-bcn-go/internal/importer/cell"
)

// ReadXLS loads the first sheet of a legacy .xls workbook into the
// untyped grid Import consumes. The xls library exposes every cell as
// text, which is fine: the locale parser handles strings anyway.
func ReadXLS(reader io.ReadSeeker) ([][]cell.Cell, error) {
	workbook, err := xls.OpenReader(reader, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("xls has no sheets")
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("xls first sheet is unreadable")
	}

	grid := make([][]cell.Cell, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}

		cells := make([]cell.Cell, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			value := row.Col(j)
			if value == "" {
				cells = append(cells, cell.Cell{})
				continue
			}
			cells = append(cells, cell.NewText(value))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
