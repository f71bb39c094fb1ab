package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/Simplici0/dogsclub/internal/logging"
	"github.com/Simplici0/dogsclub/internal/metrics"
	"github.com/Simplici0/dogsclub/internal/report"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "dogsclub",
		Short:         "Dog's Club - análise financeira para petshops",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newInitCmd(), newAnalyzeCmd(&logLevel))
	return root
}

func newInitCmd() *cobra.Command {
	var output string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample business file with the form defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}

			raw, err := yaml.Marshal(metrics.FormDefaults())
			if err != nil {
				return fmt.Errorf("encode sample input: %w", err)
			}
			if err := os.WriteFile(output, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			printSuccess(cmd.OutOrStdout(), "Arquivo %s criado. Preencha business_name e contact_email antes de analisar.", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "business.yaml", "Output file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

func newAnalyzeCmd(logLevel *string) *cobra.Command {
	var (
		input      string
		asJSON     bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the financial analysis for a business file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := loadInput(input)
			if err != nil {
				return err
			}

			analyzer := metrics.NewAnalyzer(metrics.DefaultAssumptions(), logging.New(*logLevel, true))
			res, err := analyzer.Analyze(in)
			if err != nil {
				return err
			}
			rep := report.Build(in, res)

			if reportPath != "" {
				doc, err := report.RenderHTML(in, res, rep, now())
				if err != nil {
					return err
				}
				if err := os.WriteFile(reportPath, doc, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", reportPath, err)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Result metrics.Result  `json:"result"`
					Report report.Report   `json:"report"`
					Charts report.ChartSet `json:"charts"`
				}{res, rep, report.Charts(res)})
			}

			printDashboard(out, res, rep)
			if reportPath != "" {
				printSuccess(out, "Relatório salvo em %s", reportPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "business.yaml", "Business file (YAML or JSON)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	cmd.Flags().StringVar(&reportPath, "report", "", "Also write the HTML report to this path")
	return cmd
}

// loadInput reads a YAML business file. JSON is valid YAML, so both work.
func loadInput(path string) (metrics.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return metrics.Input{}, fmt.Errorf("read %s: %w", path, err)
	}

	var in metrics.Input
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return metrics.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return metrics.NewInput(in)
}
