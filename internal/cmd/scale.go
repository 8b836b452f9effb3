package cmd

import (
	"fmt"

	"github.com/pthm/uniformcheck/internal/rating"
	"github.com/spf13/cobra"
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Print the p-value bands behind the randomness rating",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %-9s\tp ≥ %.2f\n", rating.Excellent.Emoji(), rating.Excellent, rating.ExcellentThreshold)
		fmt.Fprintf(w, "%s %-9s\t%.2f ≤ p < %.2f\n", rating.Good.Emoji(), rating.Good, rating.GoodThreshold, rating.ExcellentThreshold)
		fmt.Fprintf(w, "%s %-9s\t%.2f ≤ p < %.2f\n", rating.Fair.Emoji(), rating.Fair, rating.FairThreshold, rating.GoodThreshold)
		fmt.Fprintf(w, "%s %-9s\tp < %.2f\n", rating.Poor.Emoji(), rating.Poor, rating.FairThreshold)
	},
}

func init() {
	RootCmd.AddCommand(scaleCmd)
}
