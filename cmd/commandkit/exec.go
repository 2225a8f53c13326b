package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"commandkit/core/command"
	"commandkit/infrastructure/logging"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "exec <id>",
		Short:        "Execute a registered command",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			pairs, _ := cmd.Flags().GetStringArray("arg")

			cmdArgs, err := parseArgs(pairs)
			if err != nil {
				return err
			}

			rt, err := newRuntime(configPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := logging.With(cmd.Context(), rt.logger)
			return runExec(ctx, rt, args[0], cmdArgs)
		},
	}

	cmd.Flags().StringArray("arg", nil, "Command argument as key=value (repeatable)")
	return cmd
}

// runExec executes id, merging the catalog item's bound args under the
// command line args.
func runExec(ctx context.Context, rt *runtime, id string, args command.Args) error {
	if ctx == nil {
		ctx = context.Background()
	}

	merged := command.Args{}
	if cat := rt.watcher.Catalog(); cat != nil {
		if item, ok := cat.Item(id); ok && item.Args() != nil {
			merged = item.Args()
		}
	}
	for k, v := range args {
		merged[k] = v
	}

	ctx = logging.WithAttrs(ctx, "command", id)
	logger := logging.From(ctx)
	logger.Debug("Executing from command line", "args", len(merged))

	if err := rt.dispatcher.Dispatch(ctx, id, merged); err != nil {
		logger.Error("Command execution failed", "error", err)
		return err
	}
	return nil
}

// parseArgs parses key=value pairs.
func parseArgs(pairs []string) (command.Args, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	args := make(command.Args, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, want key=value", pair)
		}
		args[key] = value
	}
	return args, nil
}
