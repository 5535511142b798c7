package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"foodcourt.GO/config"
	menuService "foodcourt.GO/service/menu"
)

var (
	importFile    string
	importWorkers int
	importReplace bool
)

var menuImportCmd = &cobra.Command{
	Use:   "menu:import",
	Short: "Import a JSON menu feed into the catalog tables",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open feed: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := menuService.ImportMenu(db, f, menuService.ImportOptions{
			Workers: importWorkers,
			Replace: importReplace,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
Items:          %d
Price variants: %d
Toppings:       %d
Skipped:        %d
Process time:   %s
DB time:        %s
Total time:     %s
`, res.Items, res.Variants, res.Toppings, res.Skipped,
			res.ProcessTime.Round(1e6), res.DBTime.Round(1e6), res.TotalTime.Round(1e6))
	},
}

func init() {
	menuImportCmd.Flags().StringVarP(&importFile, "file", "f", "menu.json", "Path to the JSON menu feed")
	menuImportCmd.Flags().IntVarP(&importWorkers, "workers", "w", 4, "Concurrent item upserts")
	menuImportCmd.Flags().BoolVarP(&importReplace, "replace", "r", false, "Replace existing price variants instead of appending")
	rootCmd.AddCommand(menuImportCmd)
}
