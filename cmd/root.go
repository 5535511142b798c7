package cmd

import (
	"fmt"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var bannerFonts = []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}

var rootCmd = &cobra.Command{
	Use:   "foodcourt",
	Short: "Food court menu and ordering toolkit",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		fig := figure.NewFigure("FoodCourt", bannerFonts[rand.Intn(len(bannerFonts))], true)
		fig.Print()
		fmt.Println()
	},
}

// Execute runs the root command after merging registered commands.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
