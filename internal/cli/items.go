package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/itemstore"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
	"github.com/sandeepkv93/tasklist/internal/views"
	"github.com/spf13/cobra"
)

var errInvalidTask = errors.New("invalid new task")

// savedAtReporter is implemented by backends that timestamp their writes.
type savedAtReporter interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

func newListCmd(app *App) *cobra.Command {
	var showSaved bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the list in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			writeList(cmd.OutOrStdout(), s.store.Items())
			if showSaved {
				return writeSavedAt(cmd, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSaved, "saved", false, "Also print when the list was last saved (sqlite backend)")
	return cmd
}

func writeSavedAt(cmd *cobra.Command, s *session) error {
	reporter, ok := s.slots.(savedAtReporter)
	if !ok {
		fmt.Fprintf(cmd.OutOrStdout(), "last saved: unknown (%s backend)\n", s.cfg.Store.Backend)
		return nil
	}
	at, err := reporter.UpdatedAt(cmd.Context(), s.store.Key())
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "last saved: never")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read save time: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "last saved: %s\n", at.Local().Format(time.RFC3339))
	return nil
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			items, err := s.store.Add(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return taskErr(err)
			}
			last := items[len(items)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "added %d. %s\n", len(items), last.Task)
			return nil
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <row>",
		Aliases: []string{"done"},
		Short:   "Flip a task between todo and done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			row, id, err := resolveRow(s.store, args[0])
			if err != nil {
				return err
			}
			items, err := s.store.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatRow(row, items[row-1]))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <row> <text...>",
		Short: "Replace the text of a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			row, id, err := resolveRow(s.store, args[0])
			if err != nil {
				return err
			}
			items, err := s.store.EditTask(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return taskErr(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatRow(row, items[row-1]))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <row>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			row, id, err := resolveRow(s.store, args[0])
			if err != nil {
				return err
			}
			item, _, _ := s.store.Find(id)
			if _, err := s.store.Remove(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d. %s\n", row, item.Task)
			return nil
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "mv <from> <to>",
		Aliases: []string{"move"},
		Short:   "Move a task to another position",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := commands.ParseRow(args[0])
			if err != nil {
				return err
			}
			to, err := commands.ParseRow(args[1])
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			items, err := s.store.Reorder(cmd.Context(), from-1, to-1)
			if err != nil {
				return err
			}
			writeList(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every task and erase the stored list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), app, true)
			if err != nil {
				return err
			}
			defer s.close()
			if _, err := s.store.ClearAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all tasks cleared")
			return nil
		},
	}
}

// resolveRow maps a 1-based row argument to the id shown at that row.
func resolveRow(store *itemstore.Store, arg string) (int, string, error) {
	row, err := commands.ParseRow(arg)
	if err != nil {
		return 0, "", err
	}
	items := store.Items()
	if row > len(items) {
		return 0, "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task at row %d", row)}
	}
	return row, items[row-1].ID, nil
}

func taskErr(err error) error {
	if itemstore.IsValidation(err) {
		return fmt.Errorf("%w (%v)", errInvalidTask, err)
	}
	return err
}

func writeList(w io.Writer, items []model.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, views.EmptyPlaceholder)
		return
	}
	for i, item := range items {
		fmt.Fprintln(w, formatRow(i+1, item))
	}
}

func formatRow(row int, item model.Item) string {
	box := "[ ]"
	if item.Done() {
		box = "[x]"
	}
	return fmt.Sprintf("%d. %s %s", row, box, item.Task)
}
