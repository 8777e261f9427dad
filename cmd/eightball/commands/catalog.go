package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pocket8/eightball/cmd/eightball/internal/config"
	"github.com/pocket8/eightball/pkg/catalog"
	"github.com/pocket8/eightball/pkg/storage"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the response catalog",
}

var catalogInitForce bool

var catalogInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default 30-answer catalog to the data directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fs, err := storage.NewLocal(cfg.DataDir)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if !catalogInitForce {
			ok, err := fs.Exists(ctx, cfg.Catalog)
			if err != nil {
				return err
			}
			if ok {
				return fmt.Errorf("catalog %s already exists (use --force to overwrite)", cfg.Catalog)
			}
		}

		data, err := json.MarshalIndent(catalog.Default(), "", "  ")
		if err != nil {
			return err
		}
		if err := storage.WriteAll(ctx, fs, cfg.Catalog, data); err != nil {
			return err
		}
		fmt.Printf("wrote %d responses to %s\n", catalog.Default().Len(), cfg.Catalog)
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the responses in the catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fs, err := storage.NewLocal(cfg.DataDir)
		if err != nil {
			return err
		}

		data, err := storage.ReadAll(cmd.Context(), fs, cfg.Catalog)
		if err != nil {
			return err
		}
		cat, err := catalog.Parse(data)
		if err != nil {
			return err
		}

		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
		for i := 0; i < cat.Len(); i++ {
			r := cat.At(i)
			line := fmt.Sprintf("%3d  %s", i, r.Text)
			var markers string
			if r.HasAudio() {
				markers += " [wav: " + r.WAV + "]"
			}
			if r.HasBitmap() {
				markers += " [bitmap: " + r.Bitmap + "]"
			}
			fmt.Println(line + dim.Render(markers))
		}
		return nil
	},
}

func init() {
	catalogInitCmd.Flags().BoolVar(&catalogInitForce, "force", false, "overwrite an existing catalog")
	catalogCmd.AddCommand(catalogInitCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	rootCmd.AddCommand(catalogCmd)
}
