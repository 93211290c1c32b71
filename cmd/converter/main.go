// Command converter reads every record from one ledger file and
// re-emits it on stdout in a (possibly different) ledger format.
//
// Usage:
//
//	converter -i ledger.bin --input-format bin --output-format csv > ledger.csv
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/flashdb/ledgertool/internal/cliutil"
	"github.com/flashdb/ledgertool/internal/ledger"
	"github.com/flashdb/ledgertool/internal/version"
)

var (
	inputPath    string
	inputFormat  string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:          "converter",
	Short:        "Convert a bank-transaction ledger between bin, csv, and txt formats",
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the input ledger file")
	rootCmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: bin|csv|txt")
	rootCmd.Flags().StringVar(&outputFormat, "output-format", "", "output format: bin|csv|txt")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("input-format")
	_ = rootCmd.MarkFlagRequired("output-format")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := cliutil.ValidatePath(inputPath); err != nil {
		return err
	}

	inFmt, ok := ledger.ParseFormat(inputFormat)
	if !ok {
		return fmt.Errorf("converter: unknown --input-format %q", inputFormat)
	}
	outFmt, ok := ledger.ParseFormat(outputFormat)
	if !ok {
		return fmt.Errorf("converter: unknown --output-format %q", outputFormat)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("converter: opening %s: %w", inputPath, err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	if err := ledger.ReadPrologue(reader, inFmt); err != nil {
		return fmt.Errorf("converter: reading prologue: %w", err)
	}

	writer := bufio.NewWriter(os.Stdout)
	if err := ledger.WritePrologue(writer, outFmt); err != nil {
		return fmt.Errorf("converter: writing prologue: %w", err)
	}

	count := 0
	for {
		rec, err := ledger.DecodeOne(reader, inFmt)
		if err != nil {
			break
		}
		if err := ledger.EncodeOne(writer, outFmt, rec); err != nil {
			return fmt.Errorf("converter: encoding record %d: %w", count, err)
		}
		count++
	}

	return writer.Flush()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("converter: %v", err)
	}
}
