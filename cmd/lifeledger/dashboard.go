package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/lifeledger/internal/tui"
	"github.com/Veraticus/lifeledger/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tr, closeFn, err := initTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			return tui.Run(cmd.Context(), tr, tui.WithTheme(themes.ByName(viper.GetString("ui.theme"))))
		},
	}

	cmd.Flags().String("theme", "dark", "color theme (dark, light)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}
