// Package ledger implements the tri-format bank-transaction ledger codec:
// a magic-anchored binary frame, a comma-separated fixed-column text form,
// and a human-readable KEY: VALUE block form. All three share the
// record.Record model and are reachable through the two uniform
// operations DecodeOne and EncodeOne.
package ledger

import (
	"bufio"
	"io"

	"github.com/flashdb/ledgertool/internal/record"
)

// Format selects which wire representation a ledger is read from or
// written to.
type Format int

const (
	BIN Format = iota
	CSV
	TXT
)

// String returns a human-readable name for the format, used in CLI
// diagnostics.
func (f Format) String() string {
	switch f {
	case BIN:
		return "bin"
	case CSV:
		return "csv"
	case TXT:
		return "txt"
	default:
		return "unknown"
	}
}

// ParseFormat parses a lowercase format name as used by the converter
// and comparer CLI flags.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "bin":
		return BIN, true
	case "csv":
		return CSV, true
	case "txt":
		return TXT, true
	default:
		return 0, false
	}
}

// DecodeOne decodes a single record from reader in the given format.
func DecodeOne(reader *bufio.Reader, format Format) (record.Record, error) {
	switch format {
	case BIN:
		return decodeBin(reader)
	case CSV:
		return decodeCSV(reader)
	case TXT:
		return decodeTXT(reader)
	default:
		panic("ledger: unknown format")
	}
}

// EncodeOne encodes one record to writer in the given format.
func EncodeOne(writer io.Writer, format Format, rec record.Record) error {
	switch format {
	case BIN:
		return encodeBin(writer, rec)
	case CSV:
		return encodeCSV(writer, rec)
	case TXT:
		return encodeTXT(writer, rec)
	default:
		panic("ledger: unknown format")
	}
}

// ReadPrologue consumes the format-specific prologue before the first
// DecodeOne call. For CSV this discards the header line; BIN and TXT
// have no prologue.
func ReadPrologue(reader *bufio.Reader, format Format) error {
	if format != CSV {
		return nil
	}
	_, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

// WritePrologue emits the format-specific prologue before the first
// EncodeOne call. For CSV this writes the header line; BIN and TXT have
// no prologue.
func WritePrologue(writer io.Writer, format Format) error {
	if format != CSV {
		return nil
	}
	_, err := writer.Write([]byte(csvHeaderLine + "\n"))
	return err
}
