package extractor

import (
	"math"
	"sort"
	"strings"

	"fjacquet/specsheet/internal/models"

	"github.com/ledongthuc/pdf"
)

// layoutConfig holds the geometric thresholds used to reconstruct
// reading order and detect borderless tables from positioned glyph runs.
type layoutConfig struct {
	// RowTolerance is the Y-coordinate tolerance for grouping runs
	// into the same visual row (in points).
	RowTolerance float64
	// CellGapThreshold is the minimum horizontal gap between runs that
	// starts a new cell within a row.
	CellGapThreshold float64
	// ColumnTolerance is the maximum distance between cell start
	// positions that still count as the same table column.
	ColumnTolerance float64
	// MinTableRows is the minimum number of consecutive multi-cell
	// rows that form a table region.
	MinTableRows int
}

func defaultLayoutConfig() layoutConfig {
	return layoutConfig{
		RowTolerance:     3.0,
		CellGapThreshold: 14.0,
		ColumnTolerance:  12.0,
		MinTableRows:     2,
	}
}

// textRow is one visual line: cells ordered left to right.
type textRow struct {
	y     float64
	cells []textCell
}

type textCell struct {
	x     float64
	right float64
	text  string
}

func (r textRow) line() string {
	parts := make([]string, len(r.cells))
	for i, c := range r.cells {
		parts[i] = c.text
	}
	return strings.Join(parts, "  ")
}

// assemble turns positioned text runs into newline-preserving page text
// plus the tables detected inside it. Table rows stay part of the text
// so heading offsets remain meaningful for the segmenter.
func (cfg layoutConfig) assemble(texts []pdf.Text) (string, []models.PlacedTable) {
	rows := cfg.groupIntoRows(texts)
	if len(rows) == 0 {
		return "", nil
	}

	regions := cfg.detectTableRegions(rows)

	var b strings.Builder
	var tables []models.PlacedTable
	region := 0
	for i := 0; i < len(rows); i++ {
		if region < len(regions) && regions[region].start == i {
			offset := b.Len()
			for j := regions[region].start; j <= regions[region].end; j++ {
				b.WriteString(rows[j].line())
				b.WriteString("\n")
			}
			tables = append(tables, models.PlacedTable{
				Offset: offset,
				Cells:  cfg.buildGrid(rows[regions[region].start : regions[region].end+1]),
			})
			i = regions[region].end
			region++
			continue
		}
		b.WriteString(rows[i].line())
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n"), tables
}

// groupIntoRows clusters text runs by Y position and merges runs within
// a row into cells separated by significant horizontal gaps.
func (cfg layoutConfig) groupIntoRows(texts []pdf.Text) []textRow {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 {
		return nil
	}

	// Top of page first: PDF Y grows upward.
	sort.SliceStable(runs, func(i, j int) bool {
		if math.Abs(runs[i].Y-runs[j].Y) > cfg.RowTolerance {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var rows []textRow
	for _, t := range runs {
		if len(rows) == 0 || math.Abs(rows[len(rows)-1].y-t.Y) > cfg.RowTolerance {
			rows = append(rows, textRow{y: t.Y})
		}
		row := &rows[len(rows)-1]

		width := t.W
		if width == 0 {
			// Some producers omit run widths; estimate from glyph count.
			width = float64(len(t.S)) * t.FontSize * 0.5
		}

		if len(row.cells) == 0 {
			row.cells = append(row.cells, textCell{x: t.X, right: t.X + width, text: strings.TrimSpace(t.S)})
			continue
		}

		last := &row.cells[len(row.cells)-1]
		gap := t.X - last.right
		switch {
		case gap >= cfg.CellGapThreshold:
			row.cells = append(row.cells, textCell{x: t.X, right: t.X + width, text: strings.TrimSpace(t.S)})
		case gap > wordGap(t.FontSize):
			last.text += " " + strings.TrimSpace(t.S)
			last.right = t.X + width
		default:
			last.text += strings.TrimSpace(t.S)
			last.right = t.X + width
		}
	}

	return rows
}

func wordGap(fontSize float64) float64 {
	if fontSize == 0 {
		fontSize = 10.0
	}
	return fontSize * 0.2
}

type tableRegion struct {
	start, end int
}

// detectTableRegions finds maximal runs of consecutive rows that look
// like table body: at least two cells per row, with cell start
// positions aligned across the run. Alignment is what separates a
// borderless table from ordinary two-column prose.
func (cfg layoutConfig) detectTableRegions(rows []textRow) []tableRegion {
	var regions []tableRegion
	i := 0
	for i < len(rows) {
		if len(rows[i].cells) < 2 {
			i++
			continue
		}

		end := i
		for end+1 < len(rows) &&
			len(rows[end+1].cells) >= 2 &&
			cfg.aligned(rows[i], rows[end+1]) {
			end++
		}

		if end-i+1 >= cfg.MinTableRows {
			regions = append(regions, tableRegion{start: i, end: end})
		}
		i = end + 1
	}
	return regions
}

// aligned reports whether two rows share at least one interior column
// start within tolerance. The first column always aligns on the left
// margin, so it carries no signal.
func (cfg layoutConfig) aligned(a, b textRow) bool {
	for _, ca := range a.cells[1:] {
		for _, cb := range b.cells[1:] {
			if math.Abs(ca.x-cb.x) <= cfg.ColumnTolerance {
				return true
			}
		}
	}
	return false
}

// buildGrid converts a table region into a rectangular cell grid. Column
// boundaries come from clustering cell start positions across all rows;
// rows with fewer cells are padded with empty strings to the grid width.
func (cfg layoutConfig) buildGrid(rows []textRow) models.RawTable {
	columns := cfg.clusterColumns(rows)

	grid := make(models.RawTable, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		for _, c := range row.cells {
			idx := nearestColumn(columns, c.x)
			if cells[idx] != "" {
				cells[idx] += " " + c.text
			} else {
				cells[idx] = c.text
			}
		}
		grid[i] = cells
	}
	return grid
}

// clusterColumns merges cell start positions within ColumnTolerance into
// ordered column anchors.
func (cfg layoutConfig) clusterColumns(rows []textRow) []float64 {
	var starts []float64
	for _, row := range rows {
		for _, c := range row.cells {
			starts = append(starts, c.x)
		}
	}
	sort.Float64s(starts)

	var columns []float64
	for _, x := range starts {
		if len(columns) == 0 || x-columns[len(columns)-1] > cfg.ColumnTolerance {
			columns = append(columns, x)
		}
	}
	return columns
}

func nearestColumn(columns []float64, x float64) int {
	best := 0
	bestDist := math.Abs(columns[0] - x)
	for i := 1; i < len(columns); i++ {
		if d := math.Abs(columns[i] - x); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
