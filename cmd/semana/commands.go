package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/td0m/semana/pkg/dateinput"
	"github.com/td0m/semana/pkg/persist"
	"github.com/td0m/semana/pkg/plan"
	"github.com/td0m/semana/pkg/planner"
	"github.com/td0m/semana/pkg/task"
	"github.com/td0m/semana/pkg/task/date"
)

var (
	errBadDate      = errors.New("unrecognised date")
	errConfigExists = errors.New("config file already exists")
)

func (c *cli) print(cmd *cobra.Command, s string) {
	io.WriteString(cmd.OutOrStdout(), s) //nolint:errcheck
}

// goTo points the board at the week containing s, if given
func goTo(p *planner.Planner, s string) error {
	if s == "" {
		return nil
	}
	t, ok := dateinput.Parse(s, p.Now())
	if !ok {
		return fmt.Errorf("%w: %q", errBadDate, s)
	}
	p.GoTo(t)
	return nil
}

func (c *cli) weekCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the board of a week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			if err := goTo(p, on); err != nil {
				return err
			}
			c.print(cmd, c.out.FormatWeek(newWeek(p)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&on, "date", "d", "", "Any date in the week to show (hoy, +1s, 12/03...)")
	return cmd
}

func (c *cli) addCmd() *cobra.Command {
	var (
		on          string
		minutes     int
		topic       string
		color       string
		start       string
		description string
	)
	cmd := &cobra.Command{
		Use:   "add <day> <title>",
		Short: "Add a task to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := date.ParseDay(args[0])
			if err != nil {
				return err
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			if err := goTo(p, on); err != nil {
				return err
			}
			if topic != "" {
				if _, ok := p.FindTopic(topic); !ok {
					return fmt.Errorf("unknown topic %q", topic)
				}
			}
			t, err := p.AddTask(task.Draft{
				Title:           args[1],
				Description:     description,
				Day:             day,
				StartTime:       start,
				DurationMinutes: minutes,
				Color:           color,
				TopicTitle:      topic,
			})
			if err != nil {
				return err
			}
			c.print(cmd, c.out.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&on, "date", "d", "", "Any date in the target week")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 60, "Planned duration in minutes")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Syllabus topic title")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Color: personal, work, study, health or a hex value")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start time, HH:MM")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	return cmd
}

func (c *cli) logCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "log <day> <minutes>",
		Short: "Record time spent on a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := date.ParseDay(args[0])
			if err != nil {
				return err
			}
			minutes, err := strconv.Atoi(args[1])
			if err != nil || minutes <= 0 {
				return fmt.Errorf("invalid minutes %q", args[1])
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			if err := goTo(p, on); err != nil {
				return err
			}
			t, err := p.AddTimeLog(day, minutes)
			if err != nil {
				return err
			}
			c.print(cmd, c.out.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&on, "date", "d", "", "Any date in the target week")
	return cmd
}

func (c *cli) stickerCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "sticker <day> [url]",
		Short: "Put a sticker on a day, replacing the one already there",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := date.ParseDay(args[0])
			if err != nil {
				return err
			}
			url := ""
			if len(args) == 2 {
				url = args[1]
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			if err := goTo(p, on); err != nil {
				return err
			}
			t, err := p.AddSticker(day, url)
			if err != nil {
				return err
			}
			c.print(cmd, c.out.FormatTask(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&on, "date", "d", "", "Any date in the target week")
	return cmd
}

func (c *cli) doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			id := task.ID(args[0])
			ok, err := p.ToggleTask(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", task.ErrNotFound, id)
			}
			t, _ := p.Task(id)
			c.print(cmd, c.out.FormatTask(t))
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long:  "Delete a task. Anything but a time log needs --yes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			id := task.ID(args[0])
			ok, err := p.RemoveTask(id, yes)
			if errors.Is(err, planner.ErrConfirmationRequired) {
				return fmt.Errorf("%w, run again with --yes", err)
			}
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", task.ErrNotFound, id)
			}
			c.print(cmd, c.out.FormatMessage("Deleted "+string(id)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:       "stats [daily|weekly|monthly]",
		Short:     "Show study time totals",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"daily", "weekly", "monthly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			view := "daily"
			if len(args) == 1 {
				view = args[0]
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			if err := goTo(p, on); err != nil {
				return err
			}
			bs := p.Daily()
			switch view {
			case "weekly":
				bs = p.Weekly()
			case "monthly":
				bs = p.Monthly()
			}
			c.print(cmd, c.out.FormatStats(view, bs, p.Summary()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&on, "date", "d", "", "Week shown by the daily view")
	return cmd
}

func (c *cli) planCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "plan <request...>",
		Short: "Generate a week of tasks with Gemini",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gen, err := plan.NewGemini(ctx, c.cfg.AI.APIKey, c.cfg.AI.Model, c.log)
			if err != nil {
				return err
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			if err := goTo(p, on); err != nil {
				return err
			}
			pl, added, err := p.GeneratePlan(ctx, gen, strings.Join(args, " "))
			if err != nil {
				return err
			}
			c.print(cmd, c.out.FormatMessage(fmt.Sprintf("%s: %d tasks added to %s", pl.Name, len(added), p.RangeLabel())))
			return nil
		},
	}
	cmd.Flags().StringVarP(&on, "date", "d", "", "Any date in the target week")
	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	var initFile bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if initFile {
				return c.initConfig(cmd)
			}
			cfg := *c.cfg
			if cfg.AI.APIKey != "" {
				cfg.AI.APIKey = "********"
			}
			if c.jsonOutput {
				bs, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return err
				}
				c.print(cmd, string(bs)+"\n")
				return nil
			}
			bs, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			c.print(cmd, "# "+c.configPath+"\n"+string(bs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&initFile, "init", false, "Write the effective configuration to the config file")
	return cmd
}

// initConfig writes the effective configuration to a config file that does not
// exist yet. API keys stay in the environment.
func (c *cli) initConfig(cmd *cobra.Command) error {
	if _, err := os.Stat(c.configPath); err == nil {
		return fmt.Errorf("%w: %s", errConfigExists, c.configPath)
	}
	cfg := *c.cfg
	cfg.AI.APIKey = ""
	if err := cfg.Save(c.configPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	c.print(cmd, c.out.FormatMessage("Wrote "+c.configPath))
	return nil
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all stored state as one JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := openKV(c.cfg)
			if err != nil {
				return err
			}
			defer persist.Close(kv) //nolint:errcheck
			snap, err := persist.Export(kv)
			if err != nil {
				return err
			}
			bs, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			if len(args) == 0 {
				c.print(cmd, string(bs)+"\n")
				return nil
			}
			return os.WriteFile(args[0], bs, 0o600)
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load state written by export, replacing the stored keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var snap persist.Snapshot
			if err := json.Unmarshal(bs, &snap); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			kv, err := openKV(c.cfg)
			if err != nil {
				return err
			}
			defer persist.Close(kv) //nolint:errcheck
			if err := persist.Import(kv, snap); err != nil {
				return err
			}
			c.print(cmd, c.out.FormatMessage(fmt.Sprintf("Imported %d keys", len(snap))))
			return nil
		},
	}
}
