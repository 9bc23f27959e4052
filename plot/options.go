// SPDX-License-Identifier: MIT

package plot

// ---------- Defaults ----------

const (
	// DefaultAxesWidth is the pixel width of one rendered axes cell.
	DefaultAxesWidth = 640

	// DefaultAxesHeight is the pixel height of one rendered axes cell.
	DefaultAxesHeight = 400

	// DefaultColumns is the number of axes per grid row.
	DefaultColumns = 2

	// DefaultBarWidth is the width of a category bar in category units.
	DefaultBarWidth = 0.8
)

const (
	panicSizeInvalid    = "plot: WithAxesSize: width and height must be > 0"
	panicColumnsInvalid = "plot: WithColumns: columns must be > 0"
)

// FigureOption configures a Figure. Constructors panic on nonsensical values.
type FigureOption func(*figureOptions)

type figureOptions struct {
	width   int
	height  int
	columns int
	title   string
}

func defaultFigureOptions() figureOptions {
	return figureOptions{
		width:   DefaultAxesWidth,
		height:  DefaultAxesHeight,
		columns: DefaultColumns,
	}
}

// WithAxesSize sets the pixel size of each axes cell.
func WithAxesSize(width, height int) FigureOption {
	if width <= 0 || height <= 0 {
		panic(panicSizeInvalid)
	}
	return func(o *figureOptions) {
		o.width = width
		o.height = height
	}
}

// WithColumns sets how many axes share one grid row.
func WithColumns(n int) FigureOption {
	if n <= 0 {
		panic(panicColumnsInvalid)
	}
	return func(o *figureOptions) { o.columns = n }
}

// WithTitle sets the figure title (used as the PNG chart title prefix).
func WithTitle(title string) FigureOption {
	return func(o *figureOptions) { o.title = title }
}
