package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/storyviz/internal/storybook"
	"github.com/thywilljoshua/storyviz/internal/ui"
)

func runCmd(configPath *string) *cobra.Command {
	var (
		styleName string
		scenes    int
		out       string
	)

	cmd := &cobra.Command{
		Use:   "run <pdf>",
		Short: "Summarize a story PDF and illustrate its key scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := storybook.ParseStyle(styleName)
			if err != nil {
				return err
			}
			if err := storybook.ValidateSceneCount(scenes); err != nil {
				return err
			}

			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			deps, err := buildDeps(ctx, cfg)
			if err != nil {
				return err
			}

			console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr(), isTerminal(os.Stderr))
			res, err := storybook.Run(ctx, args[0], storybook.Config{
				Loader:   deps.Loader,
				Text:     deps.Text,
				Images:   deps.Images,
				Limiter:  deps.Limiter,
				Reporter: console,
				Logger:   &log,
				Style:    style,
				Scenes:   scenes,
			})
			if err != nil && len(res.Images) == 0 {
				return err
			}

			paths, saveErr := ui.SaveImages(out, res.Images)
			console.Images(paths, res.Images)
			if saveErr != nil {
				return fmt.Errorf("save images: %w", saveErr)
			}
			if err != nil {
				return err
			}
			if len(res.Failures) > 0 {
				log.Warn().Int("failed", len(res.Failures)).Int("rendered", len(res.Images)).Msg("some scenes could not be illustrated")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&styleName, "style", "s", string(storybook.DefaultStyle), "illustration style")
	cmd.Flags().IntVarP(&scenes, "scenes", "n", 3, "number of scenes to illustrate (1-10)")
	cmd.Flags().StringVarP(&out, "out", "o", "storyviz-output", "directory for the scene images")
	return cmd
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
