// Package cli wires the cobra command tree over the application container.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/auraos/aibridge/internal/app"
	"github.com/auraos/aibridge/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd builds the container and the command tree. Bare arguments run
// the full pipeline, so `aibridge print hello` just works.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	askCmd := newAskCommand(container)

	root := &cobra.Command{
		Use:   "aibridge [instruction]",
		Short: "aibridge - natural language to BASIC bridge",
		Long:  "aibridge turns natural language instructions into BASIC statements through configurable AI providers, with local translation fallback.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			askCmd.SetArgs(args)
			return askCmd.ExecuteContext(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			container.Shutdown()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(askCmd)
	root.AddCommand(newTranslateCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newStatsCommand(container))
	root.AddCommand(newCacheCommand(container))
	root.AddCommand(newSessionCommand(container))
	return root, nil
}

func newAskCommand(container *app.Container) *cobra.Command {
	var (
		providerHint string
		sessionID    string
		numbered     bool
		timeout      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [instruction]",
		Short: "Run an instruction through the full provider pipeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			id, err := container.Orchestrator.Submit(domain.SubmitRequest{
				Context:      ctx,
				Text:         strings.Join(args, " "),
				ProviderHint: providerHint,
				SessionID:    sessionID,
			})
			if err != nil {
				return err
			}
			interaction, err := container.Orchestrator.Await(ctx, id)
			if err != nil {
				return err
			}
			renderInteraction(cmd.OutOrStdout(), interaction, numbered)
			return nil
		},
	}

	cmd.Flags().StringVarP(&providerHint, "provider", "p", "", "Provider to use (default from config)")
	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "Append the result to a conversation session")
	cmd.Flags().BoolVarP(&numbered, "numbered", "n", false, "Render the statement with BASIC line numbers")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Override request timeout")
	return cmd
}

func newTranslateCommand(container *app.Container) *cobra.Command {
	var numbered bool

	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text locally, without calling any provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := container.Engine.Translate(strings.Join(args, " "), nil)
			renderTranslation(cmd.OutOrStdout(), result, numbered)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&numbered, "numbered", "n", false, "Render the statement with BASIC line numbers")
	return cmd
}
