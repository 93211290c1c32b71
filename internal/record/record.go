// Package record defines the canonical in-memory bank-transaction record
// shared by the binary, CSV, and text ledger codecs.
package record

import "fmt"

// TxType is the kind of transaction a Record represents. Its numeric
// ordinals are part of the binary wire format and must not change.
type TxType uint8

const (
	Deposit    TxType = 0
	Transfer   TxType = 1
	Withdrawal TxType = 2
)

// String returns the canonical uppercase name used by the CSV and TXT codecs.
func (t TxType) String() string {
	switch t {
	case Deposit:
		return "DEPOSIT"
	case Transfer:
		return "TRANSFER"
	case Withdrawal:
		return "WITHDRAWAL"
	default:
		return fmt.Sprintf("TxType(%d)", uint8(t))
	}
}

// ParseTxType parses the canonical uppercase name of a TxType.
// The second return value is false for unrecognized strings.
func ParseTxType(s string) (TxType, bool) {
	switch s {
	case "DEPOSIT":
		return Deposit, true
	case "TRANSFER":
		return Transfer, true
	case "WITHDRAWAL":
		return Withdrawal, true
	default:
		return 0, false
	}
}

// TxTypeFromOrdinal converts a binary-wire ordinal byte to a TxType.
// The second return value is false for an unknown ordinal.
func TxTypeFromOrdinal(v uint8) (TxType, bool) {
	switch v {
	case 0, 1, 2:
		return TxType(v), true
	default:
		return 0, false
	}
}

// Status is the outcome of a transaction. Its numeric ordinals are part
// of the binary wire format and must not change.
type Status uint8

const (
	Success Status = 0
	Failure Status = 1
	Pending Status = 2
)

// String returns the canonical uppercase name used by the CSV and TXT codecs.
func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Pending:
		return "PENDING"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// ParseStatus parses the canonical uppercase name of a Status.
// The second return value is false for unrecognized strings.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "SUCCESS":
		return Success, true
	case "FAILURE":
		return Failure, true
	case "PENDING":
		return Pending, true
	default:
		return 0, false
	}
}

// StatusFromOrdinal converts a binary-wire ordinal byte to a Status.
// The second return value is false for an unknown ordinal.
func StatusFromOrdinal(v uint8) (Status, bool) {
	switch v {
	case 0, 1, 2:
		return Status(v), true
	default:
		return 0, false
	}
}

// Record is the canonical representation of one bank-transaction ledger
// entry. All eight fields participate in equality: set operations over
// ledgers distinguish records differing in any field, not just tx_id.
//
// description is stored without surrounding quotes; the quote bytes are
// a wire convention of the binary and CSV/TXT codecs, not a value-level
// property of the record.
type Record struct {
	TxID        uint64
	TxType      TxType
	FromUserID  uint64
	ToUserID    uint64
	Amount      uint64
	Timestamp   uint64
	Status      Status
	Description string
}

// New returns the default record: tx_id=0, tx_type=DEPOSIT, both user ids
// 0, amount=0, timestamp=0, status=SUCCESS, description="".
func New() Record {
	return Record{}
}

// Equal reports whether r and other have identical fields.
func (r Record) Equal(other Record) bool {
	return r == other
}
