// Package codecerr defines the error taxonomy shared by the binary, CSV,
// and text ledger codecs. Every codec failure is one of a fixed set of
// kinds a caller can switch on, rather than an ad-hoc wrapped error.
package codecerr

import (
	goerrors "github.com/agilira/go-errors"
)

// Kind codes for every way a codec operation can fail.
const (
	// IO covers underlying byte source/sink failure, unexpected EOF,
	// resync-loop EOF (no MAGIC found before the stream ends), and a
	// malformed or unknown-key TXT line.
	IO goerrors.ErrorCode = "LEDGER_IO"
	// IntegerParse covers a numeric field failing base-10 parse.
	IntegerParse goerrors.ErrorCode = "LEDGER_INTEGER_PARSE"
	// TxTypeInvalidString covers a text tx_type that is not
	// DEPOSIT/TRANSFER/WITHDRAWAL.
	TxTypeInvalidString goerrors.ErrorCode = "LEDGER_TX_TYPE_INVALID_STRING"
	// TxTypeInvalidOrdinal covers a binary tx_type byte that is not 0/1/2.
	TxTypeInvalidOrdinal goerrors.ErrorCode = "LEDGER_TX_TYPE_INVALID_ORDINAL"
	// StatusInvalidString covers a text status that is not
	// SUCCESS/FAILURE/PENDING.
	StatusInvalidString goerrors.ErrorCode = "LEDGER_STATUS_INVALID_STRING"
	// StatusInvalidOrdinal covers a binary status byte that is not 0/1/2.
	StatusInvalidOrdinal goerrors.ErrorCode = "LEDGER_STATUS_INVALID_ORDINAL"
	// UTF8 covers description bytes that are not valid UTF-8 (binary codec).
	UTF8 goerrors.ErrorCode = "LEDGER_UTF8"
	// BinFraming covers a frame truncated after MAGIC.
	BinFraming goerrors.ErrorCode = "LEDGER_BIN_FRAMING"
	// Custom covers the wrong TXT block line count or wrong CSV column
	// count.
	Custom goerrors.ErrorCode = "LEDGER_CUSTOM"
)

// New creates a codec error of the given kind with a message, tagging it
// with the component that raised it.
func New(kind goerrors.ErrorCode, message string) *goerrors.Error {
	return goerrors.New(kind, message).WithContext("component", "ledger_codec")
}

// Wrap wraps an underlying error (typically from the byte source/sink)
// as a codec error of the given kind.
func Wrap(cause error, kind goerrors.ErrorCode, message string) *goerrors.Error {
	return goerrors.Wrap(cause, kind, message).WithContext("component", "ledger_codec")
}

// Is reports whether err is a codec error of the given kind.
func Is(err error, kind goerrors.ErrorCode) bool {
	cerr, ok := err.(*goerrors.Error)
	if !ok {
		return false
	}
	return cerr.Code == kind
}
