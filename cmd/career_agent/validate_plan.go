package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-recommender/internal/schemas"
)

var validatePlanCmd = &cobra.Command{
	Use:   "validate-plan",
	Short: "Validate a learning plan JSON file",
	Long:  "Checks a Plan JSON file against the plan rules: four distinct weeks 1-4, 1-10 topics, up to 8 practice items, and bounded non-empty text. With --schema the file is checked against that JSON Schema instead.",
	RunE:  runValidatePlan,
}

var (
	validatePlanFile   string
	validatePlanSchema string
)

func init() {
	validatePlanCmd.Flags().StringVarP(&validatePlanFile, "plan", "f", "", "Path to Plan JSON file (required)")
	validatePlanCmd.Flags().StringVarP(&validatePlanSchema, "schema", "s", "", "Path to a JSON Schema file to validate against instead of the built-in plan rules")

	if err := validatePlanCmd.MarkFlagRequired("plan"); err != nil {
		panic(fmt.Sprintf("failed to mark plan flag as required: %v", err))
	}

	rootCmd.AddCommand(validatePlanCmd)
}

func runValidatePlan(cmd *cobra.Command, _ []string) error {
	var err error
	if validatePlanSchema != "" {
		err = schemas.ValidateJSON(validatePlanSchema, validatePlanFile)
	} else {
		var content []byte
		content, err = os.ReadFile(validatePlanFile)
		if err != nil {
			return fmt.Errorf("failed to read plan file %s: %w", validatePlanFile, err)
		}
		_, err = schemas.ValidatePlanJSON(content)
	}

	if err == nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", validatePlanFile)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %d error(s)\n", len(validationErr.Errors))
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("plan %s is invalid", validatePlanFile)
	}

	return err
}
