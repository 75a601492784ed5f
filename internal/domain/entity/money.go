package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// Amounts are held as int64 paise (hundredths) everywhere inside the system;
// the wire carries textual decimals like "150.00". String-based conversion
// avoids floating point drift on money.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for
// money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a textual amount and converts it to paise. The
// amount must be strictly positive.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: multiple decimal points", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		// No decimal point
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			// Like "10."
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if value == 0 {
		return 0, errs.ErrNegativeAmount
	}
	return value, nil
}

// FormatAmount converts paise to a decimal string, e.g. 1015 -> "10.15".
func FormatAmount(paise int64) string {
	isNegative := paise < 0
	if isNegative {
		paise = -paise
	}

	amountStr := strconv.FormatInt(paise, 10)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}
