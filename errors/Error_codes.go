package errors

import "strconv"

// ERR is the error code carried by every *Error. Codes are stable: they are
// logged and compared across nodes, so existing values must never be renumbered.
type ERR int32

//nolint:revive,stylecheck // upper-case codes match the names used in logs
const (
	ERR_UNKNOWN             ERR = 0
	ERR_INVALID_ARGUMENT    ERR = 1
	ERR_PROCESSING          ERR = 4
	ERR_CONFIGURATION       ERR = 5
	ERR_CONTEXT_CANCELED    ERR = 7
	ERR_BLOCK_NOT_FOUND     ERR = 10
	ERR_BLOCK_INVALID       ERR = 11
	ERR_BLOCK_EXISTS        ERR = 12
	ERR_SERVICE_UNAVAILABLE ERR = 40
	ERR_SERVICE_ERROR       ERR = 42
	ERR_STORAGE_UNAVAILABLE ERR = 50
	ERR_STORAGE_ERROR       ERR = 52

	// consensus rejections
	ERR_BLOCK_INVALID_ALGO       ERR = 70
	ERR_BLOCK_INVALID_DIFFICULTY ERR = 71
	ERR_BLOCK_INVALID_SOLUTION   ERR = 72

	// mining
	ERR_MINING_STALE_CONTEXT     ERR = 80
	ERR_MINING_DUPLICATE_SUBMIT  ERR = 81
	ERR_MINING_SOLUTION_REJECTED ERR = 82
)

var ERR_name = map[int32]string{
	0:  "UNKNOWN",
	1:  "INVALID_ARGUMENT",
	4:  "PROCESSING",
	5:  "CONFIGURATION",
	7:  "CONTEXT_CANCELED",
	10: "BLOCK_NOT_FOUND",
	11: "BLOCK_INVALID",
	12: "BLOCK_EXISTS",
	40: "SERVICE_UNAVAILABLE",
	42: "SERVICE_ERROR",
	50: "STORAGE_UNAVAILABLE",
	52: "STORAGE_ERROR",
	70: "BLOCK_INVALID_ALGO",
	71: "BLOCK_INVALID_DIFFICULTY",
	72: "BLOCK_INVALID_SOLUTION",
	80: "MINING_STALE_CONTEXT",
	81: "MINING_DUPLICATE_SUBMIT",
	82: "MINING_SOLUTION_REJECTED",
}

// Enum returns the symbolic name of the code, as it appears in log output.
func (x ERR) Enum() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return strconv.Itoa(int(x))
}

func (x ERR) String() string {
	return x.Enum()
}
