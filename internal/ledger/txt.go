package ledger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flashdb/ledgertool/internal/codecerr"
	"github.com/flashdb/ledgertool/internal/record"
)

// txtKnownFields is used only to validate an unrecognized key; the
// eight keys may appear in any order within a block.
var txtKnownFields = map[string]bool{
	"TX_ID": true, "TX_TYPE": true, "FROM_USER_ID": true, "TO_USER_ID": true,
	"AMOUNT": true, "TIMESTAMP": true, "STATUS": true, "DESCRIPTION": true,
}

const txtRecordLines = 8

// decodeTXT reads one block of exactly 8 "KEY: VALUE" lines, in any
// order. Comment lines (starting with '#') are ignored. Leading blank
// lines are tolerated. It returns as soon as the eighth key line is read:
// the blank line that ends the block, or any further key line, is left in
// the stream for the next call.
func decodeTXT(r *bufio.Reader) (record.Record, error) {
	rec := record.New()
	lineCount := 0

	for {
		line, err := r.ReadString('\n')
		atEOF := err == io.EOF
		if err != nil && !atEOF {
			return record.Record{}, codecerr.Wrap(err, codecerr.IO, "txt: reading line")
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case strings.HasPrefix(line, "#"):
			// comment, ignored

		case line == "" && lineCount == 0:
			// leading blank line, tolerated

		case line == "" && lineCount < txtRecordLines:
			return record.Record{}, codecerr.New(codecerr.Custom, fmt.Sprintf("txt: record should have at least %d lines", txtRecordLines))

		case line == "":
			return record.Record{}, codecerr.New(codecerr.Custom, "txt: invalid record data")

		default:
			key, value, ok := strings.Cut(line, ":")
			if !ok {
				return record.Record{}, codecerr.New(codecerr.IO, "txt: malformed KEY: VALUE line")
			}
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)

			if !txtKnownFields[key] {
				return record.Record{}, codecerr.New(codecerr.IO, "txt: unknown record field: "+key)
			}

			if err := assignTXTField(&rec, key, value); err != nil {
				return record.Record{}, err
			}
			lineCount++

			if lineCount == txtRecordLines {
				return rec, nil
			}
		}

		if atEOF {
			break
		}
	}

	return record.Record{}, codecerr.New(codecerr.IO, fmt.Sprintf("txt: record should have at least %d lines", txtRecordLines))
}

func assignTXTField(rec *record.Record, key, value string) error {
	switch key {
	case "TX_ID":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "txt: parsing TX_ID")
		}
		rec.TxID = v
	case "TX_TYPE":
		t, ok := record.ParseTxType(value)
		if !ok {
			return codecerr.New(codecerr.TxTypeInvalidString, "txt: invalid TX_TYPE: "+value)
		}
		rec.TxType = t
	case "FROM_USER_ID":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "txt: parsing FROM_USER_ID")
		}
		rec.FromUserID = v
	case "TO_USER_ID":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "txt: parsing TO_USER_ID")
		}
		rec.ToUserID = v
	case "AMOUNT":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "txt: parsing AMOUNT")
		}
		rec.Amount = v
	case "TIMESTAMP":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "txt: parsing TIMESTAMP")
		}
		rec.Timestamp = v
	case "STATUS":
		s, ok := record.ParseStatus(value)
		if !ok {
			return codecerr.New(codecerr.StatusInvalidString, "txt: invalid STATUS: "+value)
		}
		rec.Status = s
	case "DESCRIPTION":
		rec.Description = stripQuotes(value)
	}
	return nil
}

// encodeTXT writes rec as a commented, labeled block:
//
//	# Record <N> (<TX_TYPE>)
//	TX_ID: <tx_id>
//	...
//	DESCRIPTION: "<description>"
//	<blank line>
//
// where N = (tx_id mod 10000) + 1. The description is always wrapped in
// quotes, even when empty.
func encodeTXT(w io.Writer, rec record.Record) error {
	n := rec.TxID%10000 + 1

	var b strings.Builder
	fmt.Fprintf(&b, "# Record %d (%s)\n", n, rec.TxType)
	fmt.Fprintf(&b, "TX_ID: %d\n", rec.TxID)
	fmt.Fprintf(&b, "TX_TYPE: %s\n", rec.TxType)
	fmt.Fprintf(&b, "FROM_USER_ID: %d\n", rec.FromUserID)
	fmt.Fprintf(&b, "TO_USER_ID: %d\n", rec.ToUserID)
	fmt.Fprintf(&b, "AMOUNT: %d\n", rec.Amount)
	fmt.Fprintf(&b, "TIMESTAMP: %d\n", rec.Timestamp)
	fmt.Fprintf(&b, "STATUS: %s\n", rec.Status)
	b.WriteString("DESCRIPTION: \"")
	b.WriteString(rec.Description)
	b.WriteString("\"\n")
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return codecerr.Wrap(err, codecerr.IO, "txt: writing record")
	}
	return nil
}
