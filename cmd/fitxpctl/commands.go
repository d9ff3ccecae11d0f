package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/2beens/fitxp/internal/calendar"
	"github.com/2beens/fitxp/internal/docstore"
	"github.com/2beens/fitxp/internal/entries"
	"github.com/2beens/fitxp/internal/streak"
	"github.com/2beens/fitxp/internal/xp"
)

type Context struct {
	Out       io.Writer
	OpenStore func(ctx context.Context) (docstore.Store, func(), error)
	Clock     calendar.Clock
}

func (c *Context) clock() calendar.Clock {
	if c.Clock == nil {
		return calendar.SystemClock{}
	}
	return c.Clock
}

type CurveCmd struct {
	Prestige int `help:"Prestige tier whose level cap ends the table." default:"3"`
}

func (cmd *CurveCmd) Run(c *Context) error {
	if cmd.Prestige < 0 || cmd.Prestige > xp.MaxPrestige {
		return fmt.Errorf("prestige must be within [0, %d]", xp.MaxPrestige)
	}

	levelCap := xp.LevelCapFor(cmd.Prestige)
	tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tTO NEXT\tTOTAL")
	total := 0
	for level := 1; level < levelCap; level++ {
		needed := xp.XpNeededFor(level)
		total += needed
		fmt.Fprintf(tw, "%d\t%d\t%d\n", level, needed, total)
	}
	fmt.Fprintf(tw, "%d\t-\tcap (prestige %d)\n", levelCap, cmd.Prestige)
	return tw.Flush()
}

type ProgressCmd struct {
	Level int `arg:"" help:"Current level."`
	XP    int `arg:"" name:"xp" help:"Xp within the level."`
}

func (cmd *ProgressCmd) Run(c *Context) error {
	if cmd.Level < 1 {
		return fmt.Errorf("level must be at least 1")
	}
	p := xp.XpProgress(cmd.Level, cmd.XP)
	_, err := fmt.Fprintf(c.Out, "level %d: %d/%d xp (%.1f%%)\n", cmd.Level, p.Current, p.Needed, p.Pct*100)
	return err
}

type StreakCmd struct {
	User   string `arg:"" help:"User id."`
	Date   string `help:"Day to compute the streak for (YYYY-MM-DD), today by default."`
	Window int    `help:"How many recent entries to scan." default:"500"`
}

func (cmd *StreakCmd) Run(c *Context) error {
	date := cmd.Date
	if date == "" {
		date = calendar.Today(c.clock())
	}
	if !calendar.IsValid(date) {
		return fmt.Errorf("invalid date [%s], expected YYYY-MM-DD", date)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	calc := streak.NewCalculator(entries.NewRepo(store), cmd.Window)
	days, err := calc.ComputeStreak(ctx, cmd.User, date)
	if err != nil {
		return fmt.Errorf("compute streak: %w", err)
	}

	_, err = fmt.Fprintf(c.Out, "%s: %d day streak on %s\n", cmd.User, days, date)
	return err
}

type LedgerCmd struct {
	User  string `arg:"" help:"User id."`
	Limit int    `help:"Max number of events." default:"20"`
}

func (cmd *LedgerCmd) Run(c *Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	events, err := xp.NewLedger(store, 0).List(ctx, cmd.User, cmd.Limit)
	if err != nil {
		return fmt.Errorf("list xp events: %w", err)
	}

	tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tTYPE\tAMOUNT\tDETAILS")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%+d\t%s\n",
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Type,
			e.Amount,
			describeMeta(e.Meta),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.Out, "%d events\n", len(events))
	return err
}

func describeMeta(m xp.Meta) string {
	var out string
	add := func(k, v string) {
		if v == "" {
			return
		}
		if out != "" {
			out += " "
		}
		out += k + "=" + v
	}
	add("entry", m.EntryID)
	add("weight", m.WeightID)
	add("date", m.Date)
	add("reason", m.Reason)
	if m.From != nil && m.To != nil {
		add("prestige", fmt.Sprintf("%d->%d", *m.From, *m.To))
	}
	return out
}
