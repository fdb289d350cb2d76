package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/td0m/semana/pkg/planner"
	"github.com/td0m/semana/pkg/syllabus"
)

var errUnknownTopic = errors.New("unknown topic")

func parseTopicID(s string) (syllabus.ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid topic id %q", s)
	}
	return syllabus.ID(n), nil
}

func parseType(s string) (syllabus.Type, error) {
	typ := syllabus.Type(s)
	if !typ.Valid() {
		return "", fmt.Errorf("invalid type %q, want %s or %s", s, syllabus.Specific, syllabus.Legislation)
	}
	return typ, nil
}

// withTopic opens the planner and resolves the topic id in args[0]
func (c *cli) withTopic(args []string, fn func(p *planner.Planner, t syllabus.Topic) error) error {
	id, err := parseTopicID(args[0])
	if err != nil {
		return err
	}
	p, done, err := c.open(c.clock)
	if err != nil {
		return err
	}
	defer done()
	t, ok := p.Topic(id)
	if !ok {
		return fmt.Errorf("%w: %d", errUnknownTopic, id)
	}
	return fn(p, t)
}

func (c *cli) syllabusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "syllabus",
		Aliases: []string{"temario"},
		Short:   "Manage the syllabus topics",
	}
	cmd.AddCommand(
		c.syllabusListCmd(),
		c.syllabusAddCmd(),
		c.syllabusRenameCmd(),
		c.syllabusRmCmd(),
		c.syllabusMvCmd(),
		c.syllabusDoneCmd(),
		c.syllabusNoteCmd(),
	)
	return cmd
}

func (c *cli) syllabusListCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List topics with their progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseType(typ)
			if err != nil {
				return err
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			c.print(cmd, c.out.FormatTopics(topicRows(p, t)))
			if !c.jsonOutput {
				d, total := p.Progress(t)
				c.print(cmd, fmt.Sprintf("\n%d/%d completados\n", d, total))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(syllabus.Specific), "specific or legislation")
	return cmd
}

func (c *cli) syllabusAddCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Append a topic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseType(typ)
			if err != nil {
				return err
			}
			p, done, err := c.open(c.clock)
			if err != nil {
				return err
			}
			defer done()
			topic, err := p.AddTopic(t)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if _, err := p.RenameTopic(topic.ID, args[0]); err != nil {
					return err
				}
				topic.Title = args[0]
			}
			c.print(cmd, c.out.FormatTopics([]TopicRow{{Topic: topic, Number: len(p.Partition(t))}}))
			return nil
		},
	}
	cmd.Flags().StringVar(&typ, "type", string(syllabus.Specific), "specific or legislation")
	return cmd
}

func (c *cli) syllabusRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a topic, tasks keep the old title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTopic(args, func(p *planner.Planner, t syllabus.Topic) error {
				if _, err := p.RenameTopic(t.ID, args[1]); err != nil {
					return err
				}
				c.print(cmd, c.out.FormatMessage(fmt.Sprintf("Renamed %q to %q", t.Title, args[1])))
				return nil
			})
		},
	}
}

func (c *cli) syllabusRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTopic(args, func(p *planner.Planner, t syllabus.Topic) error {
				_, err := p.RemoveTopic(t.ID, yes)
				if errors.Is(err, planner.ErrConfirmationRequired) {
					return fmt.Errorf("%w, run again with --yes", err)
				}
				if err != nil {
					return err
				}
				c.print(cmd, c.out.FormatMessage("Deleted "+t.Title))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}

func (c *cli) syllabusMvCmd() *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:       "mv <id> [up|down]",
		Short:     "Swap a topic with its neighbour or move it to a position",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			move := func(p *planner.Planner, t syllabus.Topic) (bool, error) {
				return p.MoveTopicTo(t.ID, to)
			}
			if !cmd.Flags().Changed("to") {
				if len(args) != 2 {
					return errors.New("want a direction or --to")
				}
				var dir syllabus.Direction
				switch args[1] {
				case "up":
					dir = syllabus.Up
				case "down":
					dir = syllabus.Down
				default:
					return fmt.Errorf("invalid direction %q", args[1])
				}
				move = func(p *planner.Planner, t syllabus.Topic) (bool, error) {
					return p.MoveTopic(p.TopicIndex(t.ID), dir)
				}
			}
			return c.withTopic(args, func(p *planner.Planner, t syllabus.Topic) error {
				ok, err := move(p, t)
				if err != nil {
					return err
				}
				if !ok {
					c.print(cmd, c.out.FormatMessage("Nothing to move"))
					return nil
				}
				c.print(cmd, c.out.FormatTopics(topicRows(p, t.Type)))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "Position in the list, as shown by syllabus list")
	return cmd
}

func (c *cli) syllabusDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a topic's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTopic(args, func(p *planner.Planner, t syllabus.Topic) error {
				done, err := p.ToggleTopic(t.ID)
				if err != nil {
					return err
				}
				state := "pendiente"
				if done {
					state = "completado"
				}
				c.print(cmd, c.out.FormatMessage(t.Title+": "+state))
				return nil
			})
		},
	}
}

func (c *cli) syllabusNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> [text]",
		Short: "Show or replace a topic's note, empty text deletes it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withTopic(args, func(p *planner.Planner, t syllabus.Topic) error {
				if len(args) == 2 {
					if err := p.SaveNote(t.ID, args[1]); err != nil {
						return err
					}
				}
				c.print(cmd, c.out.FormatMessage(p.Note(t.ID)))
				return nil
			})
		},
	}
}
