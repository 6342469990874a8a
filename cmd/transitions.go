package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/carrental/core/poisson"
	"github.com/kilianp07/carrental/core/rental"
)

var transitionsFlags struct {
	state string
	top   int
}

var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "Print the most likely next states from a post-transfer state",
	RunE:  runTransitions,
}

func init() {
	transitionsCmd.Flags().StringVar(&transitionsFlags.state, "state", "10,10", "post-transfer state as first,second")
	transitionsCmd.Flags().IntVar(&transitionsFlags.top, "top", 10, "number of next states to print, 0 for all")
	rootCmd.AddCommand(transitionsCmd)
}

func parseState(s string) (rental.State, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return rental.State{}, fmt.Errorf("state %q: want first,second", s)
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return rental.State{}, fmt.Errorf("state %q: %w", s, err)
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return rental.State{}, fmt.Errorf("state %q: %w", s, err)
	}
	return rental.State{First: first, Second: second}, nil
}

func runTransitions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	start, err := parseState(transitionsFlags.state)
	if err != nil {
		return err
	}
	m, err := rental.NewModel(cfg.Problem, poisson.NewCache())
	if err != nil {
		return err
	}
	jt, err := m.Transitions(start)
	if err != nil {
		return err
	}

	type row struct {
		next rental.State
		t    rental.Transition
	}
	var rows []row
	jt.Each(func(next rental.State, t rental.Transition) {
		rows = append(rows, row{next, t})
	})
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].t.Prob > rows[j].t.Prob })
	if n := transitionsFlags.top; n > 0 && n < len(rows) {
		rows = rows[:n]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "from %s\n", start)
	fmt.Fprintf(out, "%-8s %10s %10s\n", "next", "prob", "reward")
	for _, r := range rows {
		fmt.Fprintf(out, "%-8s %10.6f %10.4f\n", r.next, r.t.Prob, r.t.Reward)
	}
	fmt.Fprintf(out, "total probability %.9f, expected reward %.4f\n", jt.TotalProb(), jt.ExpectedReward())
	return nil
}
