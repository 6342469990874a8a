// Package report renders policy and value grids as text tables. Rows run
// from the highest first-location count down to zero; columns are the
// second-location count.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"

	"github.com/kilianp07/carrental/core/logger"
	"github.com/kilianp07/carrental/core/solver"
)

// Printer writes grids to w. It implements solver.Observer so every policy
// about to be evaluated and the final values are printed as the solver runs.
type Printer struct {
	mu sync.Mutex
	w   io.Writer
	au  aurora.Aurora
	log logger.Logger
}

// Option customises a Printer.
type Option func(*Printer)

// WithLogger sets the logger receiving observer write failures.
func WithLogger(l logger.Logger) Option {
	return func(pr *Printer) {
		if l != nil {
			pr.log = l
		}
	}
}

// NewPrinter returns a Printer writing to w. With color set, transfers
// towards the second location are green and transfers back are blue.
func NewPrinter(w io.Writer, color bool, opts ...Option) *Printer {
	pr := &Printer{w: w, au: aurora.NewAurora(color), log: logger.NopLogger{}}
	for _, opt := range opts {
		opt(pr)
	}
	return pr
}

// OnPolicy prints the policy of the given iteration.
func (pr *Printer) OnPolicy(iteration int, p *solver.Policy) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if _, err := fmt.Fprintf(pr.w, "POLICY %d\n", iteration); err != nil {
		pr.log.Errorf("print policy %d: %v", iteration, err)
		return
	}
	if err := pr.writePolicy(p.Rows()); err != nil {
		pr.log.Errorf("print policy %d: %v", iteration, err)
	}
}

// OnConverged prints the value function of the optimal policy.
func (pr *Printer) OnConverged(_ *solver.Policy, v *solver.ValueFunction) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	if _, err := fmt.Fprintln(pr.w, "VALUES"); err != nil {
		pr.log.Errorf("print values: %v", err)
		return
	}
	if err := pr.writeValues(v.Rows()); err != nil {
		pr.log.Errorf("print values: %v", err)
	}
}

// WritePolicy prints rows indexed by [first][second].
func (pr *Printer) WritePolicy(rows [][]int) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.writePolicy(rows)
}

// WriteValues prints rows indexed by [first][second], rounded to one decimal.
func (pr *Printer) WriteValues(rows [][]float64) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.writeValues(rows)
}

func (pr *Printer) writePolicy(rows [][]int) error {
	var b strings.Builder
	header(&b, len(rows), 2)
	for i := len(rows) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%-2s| ", strconv.Itoa(i))
		for _, a := range rows[i] {
			cell := fmt.Sprintf("%-2d", a)
			switch {
			case a > 0:
				b.WriteString(pr.au.Green(cell).String())
			case a < 0:
				b.WriteString(pr.au.Blue(cell).String())
			default:
				b.WriteString(cell)
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(pr.w, b.String())
	return err
}

func (pr *Printer) writeValues(rows [][]float64) error {
	var b strings.Builder
	header(&b, len(rows), 5)
	for i := len(rows) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%-2s| ", strconv.Itoa(i))
		for _, v := range rows[i] {
			b.WriteString(pr.au.Cyan(fmt.Sprintf("%5s", FormatValue(v))).String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(pr.w, b.String())
	return err
}

// header writes the column numbers and a dashed rule for n columns of the
// given cell width.
func header(b *strings.Builder, n, width int) {
	b.WriteString("    ")
	for j := 0; j < n; j++ {
		if width == 2 {
			fmt.Fprintf(b, "%-2d ", j)
		} else {
			fmt.Fprintf(b, "%*d ", width, j)
		}
	}
	b.WriteString("\n    ")
	b.WriteString(strings.Repeat("-", max(n*(width+1)-1, 0)))
	b.WriteByte('\n')
}

// FormatValue rounds v to one decimal.
func FormatValue(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}
