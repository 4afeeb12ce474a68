package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aretw0/daynotes/pkg/core"
)

var (
	noteStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	todayStyle   = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.Color("#0EA5E9"))
	pastStyle    = lipgloss.NewStyle().Faint(true)
	outsideStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// dayKind places a day relative to the calendar range and today.
type dayKind int

const (
	kindOutside dayKind = iota
	kindPast
	kindToday
	kindFuture
)

func classifyDay(day, today core.Day, rng core.Range) dayKind {
	switch {
	case !rng.Contains(day):
		return kindOutside
	case day.Before(today):
		return kindPast
	case day == today:
		return kindToday
	default:
		return kindFuture
	}
}

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show a month grid; days with a note are marked with *",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}

		rng := sess.Range()
		month := rng.Start.Time(time.Local)
		if len(args) == 1 {
			month, err = time.ParseInLocation("2006-01", args[0], time.Local)
			if err != nil {
				return fmt.Errorf("invalid month %q (expected YYYY-MM)", args[0])
			}
		}

		today := core.DayOf(time.Now())
		fmt.Fprint(cmd.OutOrStdout(), renderMonth(month, rng, today, func(d core.Day) bool {
			_, ok := sess.Note(d)
			return ok
		}))
		return nil
	},
}

// renderMonth draws a Monday-first grid of the month containing t. Days with
// a note carry a * marker; past days are faint and today is highlighted.
func renderMonth(t time.Time, rng core.Range, today core.Day, hasNote func(core.Day) bool) string {
	var b strings.Builder

	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n Mo  Tu  We  Th  Fr  Sa  Su\n")

	offset := (int(first.Weekday()) + 6) % 7
	b.WriteString(strings.Repeat("    ", offset))

	col := offset
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		day := core.DayOf(d)
		kind := classifyDay(day, today, rng)

		cell := fmt.Sprintf("%3d ", d.Day())
		if kind != kindOutside && hasNote(day) {
			cell = noteStyle.Render(fmt.Sprintf("%3d*", d.Day()))
		}
		switch kind {
		case kindOutside:
			cell = outsideStyle.Render(cell)
		case kindPast:
			cell = pastStyle.Render(cell)
		case kindToday:
			cell = todayStyle.Render(cell)
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}
