package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

var (
	wordlistEnhance bool
	wordlistCap     int
	wordlistCount   bool
	variantsCap     int
)

var wordlistCmd = &cobra.Command{
	Use:   "wordlist",
	Short: "Inspect password lists",
	Long:  `Preview the candidates a crack run would try, with or without enhancement.`,
}

var wordlistExpandCmd = &cobra.Command{
	Use:   "expand <password-list>",
	Short: "Print the candidates a run would try",
	Long: `Load a password list the way a crack run does and print every candidate
in trial order. Blank lines are skipped and duplicates removed.

With --enhance generated variants are included, up to --cap per password.`,
	Args: cobra.ExactArgs(1),
	RunE: runWordlistExpand,
}

var wordlistVariantsCmd = &cobra.Command{
	Use:   "variants <password>",
	Short: "Print the variants generated for one password",
	Args:  cobra.ExactArgs(1),
	RunE:  runWordlistVariants,
}

func init() {
	wordlistExpandCmd.Flags().BoolVarP(&wordlistEnhance, "enhance", "e", false, "Include substitution variants")
	wordlistExpandCmd.Flags().IntVar(&wordlistCap, "cap", domain.DefaultVariantCap, "Maximum variants per password")
	wordlistExpandCmd.Flags().BoolVarP(&wordlistCount, "count", "c", false, "Print only the number of candidates")
	wordlistVariantsCmd.Flags().IntVar(&variantsCap, "cap", domain.DefaultVariantCap, "Maximum variants")

	wordlistCmd.AddCommand(wordlistExpandCmd)
	wordlistCmd.AddCommand(wordlistVariantsCmd)
	rootCmd.AddCommand(wordlistCmd)
}

func runWordlistExpand(cmd *cobra.Command, args []string) error {
	if wordlistService == nil {
		return errors.New("wordlist service not configured")
	}

	settings := currentSettings()
	if !cmd.Flags().Changed("enhance") {
		wordlistEnhance = settings.Variants.Enhance
	}
	if !cmd.Flags().Changed("cap") {
		wordlistCap = settings.Variants.Cap
	}
	if wordlistCap < 1 {
		return fmt.Errorf("%w: --cap must be at least 1", domain.ErrInvalidInput)
	}

	candidates, err := wordlistService.Expand(cmd.Context(), args[0], wordlistEnhance, wordlistCap)
	if err != nil {
		return fmt.Errorf("failed to expand password list: %w", err)
	}

	if wordlistCount {
		cmd.Println(candidates.Len())
		return nil
	}
	for _, c := range candidates {
		cmd.Println(c)
	}
	return nil
}

func runWordlistVariants(cmd *cobra.Command, args []string) error {
	if wordlistService == nil {
		return errors.New("wordlist service not configured")
	}
	if variantsCap < 1 {
		return fmt.Errorf("%w: --cap must be at least 1", domain.ErrInvalidInput)
	}

	for _, v := range wordlistService.Variants(args[0], variantsCap) {
		cmd.Println(v)
	}
	return nil
}
