package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/lifeledger/internal/cli"
	"github.com/Veraticus/lifeledger/internal/ledger"
	"github.com/Veraticus/lifeledger/internal/model"
	"github.com/Veraticus/lifeledger/internal/tracker"
)

func todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todo",
		Aliases: []string{"todos"},
		Short:   "Manage the todo list",
	}

	cmd.AddCommand(addTodoCmd())
	cmd.AddCommand(listTodosCmd())
	cmd.AddCommand(toggleTodoCmd())
	cmd.AddCommand(deleteTodoCmd())

	return cmd
}

func addTodoCmd() *cobra.Command {
	var priority, due string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := tracker.TodoInput{
				Text:     strings.Join(args, " "),
				Priority: model.Priority(strings.ToLower(priority)),
			}
			if due != "" {
				in.DueDate = &due
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			todo, err := tr.AddTodo(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to add todo: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added todo %d: %s", todo.ID, cli.FormatTodo(todo, tr.Today()))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "high, medium or low")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")

	return cmd
}

func listTodosCmd() *cobra.Command {
	var order string
	var pending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := ledger.ParseTodoOrder(order)
			if err != nil {
				return err
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			todos := tr.Todos(o)
			today := tr.Today()
			shown := 0
			for _, t := range todos {
				if pending && t.Done {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%6d  %s\n", t.ID, cli.FormatTodo(t, today))
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("Nothing to do."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&order, "sort", "s", string(ledger.OrderInserted), "order: priority, dueDate or created")
	cmd.Flags().BoolVar(&pending, "pending", false, "hide finished todos")

	return cmd
}

func toggleTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a todo done or not done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			toggled, err := tr.ToggleTodo(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to toggle todo: %w", err)
			}

			reportChange(cmd.OutOrStdout(), toggled, "Todo updated", fmt.Sprintf("No todo with id %d", id))
			return nil
		},
	}
}

func deleteTodoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			deleted, err := tr.DeleteTodo(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete todo: %w", err)
			}

			reportChange(cmd.OutOrStdout(), deleted, "Todo deleted", fmt.Sprintf("No todo with id %d", id))
			return nil
		},
	}
}
