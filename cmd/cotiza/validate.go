package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/darideveloper/cotiza/pkg/catalog"
	"github.com/darideveloper/cotiza/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [catalog.yaml]",
	Short: "Lint a catalog override file",
	Long:  `Checks a catalog file for duplicate ids, category entries pointing at unknown ids, negative prices and missing required sections.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := catalog.Load(args[0])
		if err != nil {
			return err
		}

		// Structural integrity passed inside Load; check the invariants
		// the wizard relies on at runtime.
		var problems []string
		if len(reg.RequiredSections()) == 0 {
			problems = append(problems, "no required sections defined (header/footer expected)")
		}
		if len(reg.FeatureCategories()) != domain.TotalSteps-1 {
			problems = append(problems, fmt.Sprintf(
				"catalog defines %d feature categories; the wizard renders %d selection steps",
				len(reg.FeatureCategories()), domain.TotalSteps-1))
		}

		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Printf("WARN: %s\n", p)
			}
			return fmt.Errorf("catalog %s has %d problem(s)", args[0], len(problems))
		}

		fmt.Printf("catalog %s is valid\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
