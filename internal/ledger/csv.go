package ledger

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/flashdb/ledgertool/internal/codecerr"
	"github.com/flashdb/ledgertool/internal/record"
)

// csvHeaderLine is the verbatim header every CSV ledger begins with.
const csvHeaderLine = "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION"

// csvColumns is the canonical column order. Column index is always
// taken from this order, never from a header line parsed out of the
// file.
var csvColumns = [8]string{
	"TX_ID", "TX_TYPE", "FROM_USER_ID", "TO_USER_ID", "AMOUNT", "TIMESTAMP", "STATUS", "DESCRIPTION",
}

// decodeCSV reads one data row (the header line must already have been
// consumed via ReadPrologue) and parses it into a Record.
func decodeCSV(r *bufio.Reader) (record.Record, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line == "" {
			return record.Record{}, codecerr.Wrap(err, codecerr.IO, "csv: end of stream")
		}
		if err != io.EOF {
			return record.Record{}, codecerr.Wrap(err, codecerr.IO, "csv: reading row")
		}
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return record.Record{}, codecerr.New(codecerr.Custom, "csv: empty line")
	}

	fields := strings.Split(line, ",")
	if len(fields) != len(csvColumns) {
		return record.Record{}, codecerr.New(codecerr.Custom, "csv: wrong number of columns in row: "+line)
	}

	rec := record.New()
	for i, name := range csvColumns {
		value := fields[i]
		if err := assignCSVField(&rec, name, value); err != nil {
			return record.Record{}, err
		}
	}
	return rec, nil
}

func assignCSVField(rec *record.Record, name, value string) error {
	switch name {
	case "TX_ID":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "csv: parsing TX_ID")
		}
		rec.TxID = v
	case "TX_TYPE":
		t, ok := record.ParseTxType(value)
		if !ok {
			return codecerr.New(codecerr.TxTypeInvalidString, "csv: invalid TX_TYPE: "+value)
		}
		rec.TxType = t
	case "FROM_USER_ID":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "csv: parsing FROM_USER_ID")
		}
		rec.FromUserID = v
	case "TO_USER_ID":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "csv: parsing TO_USER_ID")
		}
		rec.ToUserID = v
	case "AMOUNT":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "csv: parsing AMOUNT")
		}
		rec.Amount = v
	case "TIMESTAMP":
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return codecerr.Wrap(err, codecerr.IntegerParse, "csv: parsing TIMESTAMP")
		}
		rec.Timestamp = v
	case "STATUS":
		s, ok := record.ParseStatus(value)
		if !ok {
			return codecerr.New(codecerr.StatusInvalidString, "csv: invalid STATUS: "+value)
		}
		rec.Status = s
	case "DESCRIPTION":
		rec.Description = stripQuotes(value)
	}
	return nil
}

// encodeCSV writes rec as one comma-separated row in the canonical
// column order, newline-terminated. The description is rendered wrapped
// in literal double quotes; other fields render as unadorned decimal.
func encodeCSV(w io.Writer, rec record.Record) error {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(rec.TxID, 10))
	b.WriteByte(',')
	b.WriteString(rec.TxType.String())
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(rec.FromUserID, 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(rec.ToUserID, 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(rec.Amount, 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(rec.Timestamp, 10))
	b.WriteByte(',')
	b.WriteString(rec.Status.String())
	b.WriteByte(',')
	b.WriteByte('"')
	b.WriteString(rec.Description)
	b.WriteByte('"')
	b.WriteByte('\n')

	if _, err := io.WriteString(w, b.String()); err != nil {
		return codecerr.Wrap(err, codecerr.IO, "csv: writing row")
	}
	return nil
}
