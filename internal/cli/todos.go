package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"halil/internal/date"
	"halil/internal/todo"
	"halil/internal/ui"
)

func (a *app) parseDue(raw string) (*date.Date, error) {
	d, err := date.ParseInput(raw, a.store.Now())
	if err != nil {
		return nil, fmt.Errorf("due date: %w", err)
	}
	return d, nil
}

func checkTime(s string) error {
	if !date.ValidTime(s) {
		return fmt.Errorf("due time %q: want HH:MM", s)
	}
	return nil
}

func addCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawDue, _ := cmd.Flags().GetString("due")
			at, _ := cmd.Flags().GetString("time")
			memo, _ := cmd.Flags().GetString("memo")
			folderRef, _ := cmd.Flags().GetString("folder")

			in := todo.TodoInput{
				Title:   strings.Join(args, " "),
				Memo:    memo,
				DueTime: at,
			}
			var err error
			if in.DueDate, err = a.parseDue(rawDue); err != nil {
				return err
			}
			if err := checkTime(at); err != nil {
				return err
			}
			if folderRef != "" {
				f, err := a.findFolder(folderRef)
				if err != nil {
					return err
				}
				in.FolderID = f.ID
			}

			t, err := a.store.AddTodo(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "추가했습니다 %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
	cmd.Flags().StringP("due", "d", "today", "due date: YYYY-MM-DD, M/D, today, tomorrow, +N or a weekday; empty for none")
	cmd.Flags().StringP("time", "t", "", "due time, HH:MM")
	cmd.Flags().StringP("memo", "m", "", "memo")
	cmd.Flags().StringP("folder", "f", "", "folder name or id (default "+string(todo.DefaultFolderID)+")")
	return cmd
}

func lsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos of one category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catFlag, _ := cmd.Flags().GetString("category")
			folderRef, _ := cmd.Flags().GetString("folder")
			all, _ := cmd.Flags().GetBool("all")

			cat := a.cfg.Category()
			if catFlag != "" {
				c, err := date.ParseCategory(catFlag)
				if err != nil {
					return err
				}
				cat = c
			}
			folder, err := a.folderFilter(folderRef)
			if err != nil {
				return err
			}

			todos := a.store.Todos()
			if folder != todo.AllFolders {
				todos = todo.FilterByFolder(todos, folder)
			}
			label := cat.Label()
			if all {
				label = "전체"
			} else {
				todos = todo.FilterByCategory(todos, cat, a.store.Now())
			}
			todo.SortTodos(todos)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d)\n", label, len(todos))
			for _, t := range todos {
				fmt.Fprintf(out, "%s%s\n", shortID(t.ID), ui.TodoLine(t, a.store.FolderByID, false))
				if t.Memo != "" {
					fmt.Fprintf(out, "            %s\n", t.Memo)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringP("category", "c", "", "today, this-week or later (default from config)")
	cmd.Flags().StringP("folder", "f", "", "folder name or id")
	cmd.Flags().BoolP("all", "a", false, "ignore the category")
	return cmd
}

func doneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.findTodo(args[0])
			if err != nil {
				return err
			}
			t, _ = a.store.ToggleTodo(t.ID)
			state := "미완료"
			if t.Completed {
				state = "완료"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", state, t.Title)
			return nil
		},
	}
}

func editCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.findTodo(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			var p todo.TodoPatch
			changed := false

			if flags.Changed("title") {
				title, _ := flags.GetString("title")
				p.Title, changed = &title, true
			}
			if flags.Changed("memo") {
				memo, _ := flags.GetString("memo")
				p.Memo, changed = &memo, true
			}
			if flags.Changed("due") {
				raw, _ := flags.GetString("due")
				if p.DueDate, err = a.parseDue(raw); err != nil {
					return err
				}
				p.ClearDue = p.DueDate == nil
				changed = true
			}
			if noDue, _ := flags.GetBool("no-due"); noDue {
				p.ClearDue, changed = true, true
			}
			if flags.Changed("time") {
				at, _ := flags.GetString("time")
				if err := checkTime(at); err != nil {
					return err
				}
				p.DueTime, changed = &at, true
			}
			if flags.Changed("folder") {
				ref, _ := flags.GetString("folder")
				f, err := a.findFolder(ref)
				if err != nil {
					return err
				}
				p.FolderID, changed = &f.ID, true
			}
			if !changed {
				return errors.New("nothing to change: pass at least one of --title --memo --due --no-due --time --folder")
			}

			t, err = a.store.UpdateTodo(t.ID, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "수정했습니다 %s %s\n", shortID(t.ID), t.Title)
			return nil
		},
	}
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().StringP("memo", "m", "", "new memo")
	cmd.Flags().StringP("due", "d", "", "new due date; empty removes it")
	cmd.Flags().Bool("no-due", false, "remove the due date")
	cmd.Flags().StringP("time", "t", "", "new due time, HH:MM; empty removes it")
	cmd.Flags().StringP("folder", "f", "", "move to this folder")
	return cmd
}

func rmCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			t, err := a.findTodo(args[0])
			if err != nil {
				return err
			}
			if !a.store.RemoveTodo(t.ID, confirmer(cmd, yes)) {
				fmt.Fprintln(cmd.OutOrStdout(), "취소했습니다")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "삭제했습니다: %s\n", t.Title)
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	return cmd
}

func todayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.store.Now()
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderDashboard(todo.Summarize(a.store.Todos(), now), now, a.store.FolderByID))
			return nil
		},
	}
}

func weekCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week, Monday to Sunday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folderRef, _ := cmd.Flags().GetString("folder")
			width, _ := cmd.Flags().GetInt("width")
			folder, err := a.folderFilter(folderRef)
			if err != nil {
				return err
			}
			now := a.store.Now()
			todos := todo.Visible(a.store.Todos(), folder, date.ThisWeek, now)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderWeek(todo.WeekDays(now), todos, a.store.FolderByID, "", date.Of(now), width))
			return nil
		},
	}
	cmd.Flags().StringP("folder", "f", "", "folder name or id")
	cmd.Flags().Int("width", 112, "output width")
	return cmd
}

func monthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month calendar and the undated todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("month")
			folderRef, _ := cmd.Flags().GetString("folder")
			width, _ := cmd.Flags().GetInt("width")

			now := a.store.Now()
			m := todo.MonthOf(now)
			if raw != "" {
				t, err := time.Parse("2006-01", raw)
				if err != nil {
					return fmt.Errorf("month %q: want YYYY-MM", raw)
				}
				m = todo.MonthOf(t)
			}
			folder, err := a.folderFilter(folderRef)
			if err != nil {
				return err
			}
			todos := todo.Visible(a.store.Todos(), folder, date.Later, now)
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMonth(m, todos, a.store.FolderByID, "", date.Of(now), width))
			return nil
		},
	}
	cmd.Flags().String("month", "", "month to show, YYYY-MM (default this month)")
	cmd.Flags().StringP("folder", "f", "", "folder name or id")
	cmd.Flags().Int("width", 112, "output width")
	return cmd
}
