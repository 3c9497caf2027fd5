package service

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Transaction and request numbers follow <PREFIX><YYYYMMDD><4-digit-seq>,
// restarting from 0001 each day. A number is assigned exactly once at first
// save and never regenerated.

const numberSeqDigits = 4

// NextTransactionNumber produces the next daily-sequential number for the
// given model. It scans for the greatest existing number sharing today's
// prefix within tx so the lookup is consistent with the subsequent insert.
func NextTransactionNumber(tx *gorm.DB, mdl interface{}, column, prefix string, date time.Time) (string, error) {
	dayPrefix := prefix + date.Format("20060102")

	var last string
	err := tx.Model(mdl).
		Unscoped().
		Where(column+" LIKE ?", dayPrefix+"%").
		Order(column + " DESC").
		Limit(1).
		Pluck(column, &last).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%0*d", dayPrefix, numberSeqDigits, nextSequence(last)), nil
}

// NextSupplierCode produces the next supplier code (<PREFIX><4-digit-seq>,
// no date component) given the greatest existing code.
func NextSupplierCode(prefix, last string) string {
	return fmt.Sprintf("%s%0*d", prefix, numberSeqDigits, nextSequence(last))
}

// nextSequence parses the trailing 4-digit counter of the last assigned
// number. Absent or malformed trailing digits (legacy data) restart the
// sequence at 1 instead of failing.
func nextSequence(last string) int {
	if len(last) < numberSeqDigits {
		return 1
	}
	n, err := strconv.Atoi(last[len(last)-numberSeqDigits:])
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}
