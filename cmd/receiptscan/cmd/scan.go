package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wenyin0054/fundora-app-sub001/internal/pdf"
	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
)

// scanCmd runs the receipt pipeline over a single image or PDF file.
var scanCmd = &cobra.Command{
	Use:   "scan [image|pdf]",
	Short: "Scan a receipt file and print extracted transaction data",
	Long: `Scan a photographed or scanned receipt and print the structured
transaction data as JSON, YAML, or a readable summary.

PDF receipts are unwrapped to their first embedded image before scanning.

Examples:
  receiptscan scan receipt.jpg
  receiptscan scan receipt.jpg --format text
  receiptscan scan emailed-receipt.pdf --no-cloud`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringP("format", "f", "", "output format: json, yaml, or text (default from config)")
	scanCmd.Flags().Bool("no-cloud", false, "disable the cloud recognition fallback")
	scanCmd.Flags().String("cache-dir", "", "override processed-image cache directory")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	noCloud, _ := cmd.Flags().GetBool("no-cloud")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")

	imagePath := args[0]
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("cannot read %s: %w", imagePath, err)
	}

	if pdf.IsPDF(imagePath) {
		dir, err := os.MkdirTemp("", "receipt-scan-*")
		if err != nil {
			return fmt.Errorf("failed to create temp dir: %w", err)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		extracted, err := pdf.FirstImagePath(imagePath, dir)
		if err != nil {
			return fmt.Errorf("failed to extract image from PDF: %w", err)
		}
		imagePath = extracted
	}

	builder := pipeline.NewBuilder().
		WithConfig(cfg.Pipeline).
		WithCacheDir(cacheDir)
	if noCloud {
		builder = builder.WithCloudEnabled(false)
	}

	p, err := builder.Build()
	if err != nil {
		return err
	}

	outcome, err := p.ProcessReceipt(cmd.Context(), imagePath)
	if err != nil {
		return err
	}
	return printOutcome(cmd, outcome, format)
}

func printOutcome(cmd *cobra.Command, outcome *pipeline.Outcome, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		data, err := yaml.Marshal(outcome)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, _ = fmt.Fprint(out, string(data))
	case "text":
		_, _ = fmt.Fprintf(out, "Merchant:  %s\n", outcome.MerchantName)
		_, _ = fmt.Fprintf(out, "Address:   %s\n", outcome.MerchantAddress)
		_, _ = fmt.Fprintf(out, "Phone:     %s\n", outcome.Phone)
		_, _ = fmt.Fprintf(out, "Date:      %s\n", outcome.TransactionDate)
		_, _ = fmt.Fprintf(out, "Time:      %s\n", outcome.TransactionTime)
		_, _ = fmt.Fprintf(out, "Total:     %s\n", outcome.TotalAmount)
		if len(outcome.LineItems) > 0 {
			_, _ = fmt.Fprintln(out, "Items:")
			for _, item := range outcome.LineItems {
				_, _ = fmt.Fprintf(out, "  %-30s %s\n", item.Item, item.Price)
			}
		}
		_, _ = fmt.Fprintf(out, "Source:    %s (confidence %.0f, local %.0f)\n",
			outcome.Source, outcome.Confidence, outcome.LocalConfidence)
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q (expected json, yaml, or text)", strings.ToLower(format))
	}
	return nil
}
