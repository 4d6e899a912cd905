package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/auraos/aibridge/internal/app"
)

const defaultHistoryLimit = 20

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past interactions",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled.")
				return nil
			}
			interactions, err := container.History.Recent(limit)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), interactions)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Max entries to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded interactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.History == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled.")
				return nil
			}
			if err := container.History.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}

func newStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pipeline, engine and provider statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderStats(cmd.OutOrStdout(),
				container.Orchestrator.Statistics(),
				container.Engine.Statistics(),
				container.Gateway.Statistics(),
			)
			return nil
		},
	}
}

func newCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the response cache",
	}

	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show cache occupancy",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Cache == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled.")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d\n", container.Cache.Len())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Drop every cached response",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.Cache == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled.")
					return nil
				}
				container.Cache.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
				return nil
			},
		},
	)
	return cacheCmd
}

func newSessionCommand(container *app.Container) *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Manage conversation sessions",
	}

	sessionCmd.AddCommand(
		&cobra.Command{
			Use:   "new [id]",
			Short: "Open a conversation session",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var id string
				if len(args) > 0 {
					id = args[0]
				}
				created, err := container.Sessions.CreateSession(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Session %s opened.\n", created.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List active sessions",
			RunE: func(cmd *cobra.Command, args []string) error {
				renderSessions(cmd.OutOrStdout(), container.Sessions.ActiveSessions())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a session's turns",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				found, err := container.Sessions.GetSession(args[0])
				if err != nil {
					return err
				}
				renderSession(cmd.OutOrStdout(), found)
				return nil
			},
		},
		&cobra.Command{
			Use:   "analyze <id>",
			Short: "Analyze a session's conversation patterns",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				analysis, err := container.Sessions.Analyze(args[0])
				if err != nil {
					return err
				}
				renderAnalysis(cmd.OutOrStdout(), analysis)
				return nil
			},
		},
		&cobra.Command{
			Use:   "close <id>",
			Short: "Close a session and archive it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := container.Sessions.CloseSession(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Session %s closed.\n", args[0])
				return nil
			},
		},
	)
	return sessionCmd
}
