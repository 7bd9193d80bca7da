package reconcile

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	errEmptyValue = errors.New("empty value")
	errBadFormat  = errors.New("unrecognized format")
)

// dateLayouts are tried in order. Slash and dot forms are day-first.
var dateLayouts = []string{
	domain.DueDateLayout,
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"20060102",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// spreadsheetEpoch is day zero of spreadsheet serial dates.
var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerialDay is 9999-12-31 as a spreadsheet serial.
const maxSerialDay = 2958465

// canonicalAmount is plain decimal notation as produced by JSON numbers and decimal.String.
var canonicalAmount = regexp.MustCompile(`^[+-]?\d+(\.\d+)?([eE][+-]?\d+)?$`)

// currencyMarkers are stripped from amount cells before parsing.
var currencyMarkers = []string{"₺", "$", "€", "£", "TL", "tl", "Tl"}

// ParseDate parses a date cell into UTC midnight of that day.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errEmptyValue
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial <= maxSerialDay {
		return spreadsheetEpoch.AddDate(0, 0, int(serial)), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", errBadFormat, s)
}

// ParseAmount coerces an amount cell into a decimal. Plain decimal notation ("1234.567",
// "1.5e3") is taken as is. Otherwise grouped forms such as "15.000,50", "15,000.50" and
// "1.250.000" are accepted, and a single comma followed by exactly three digits is read
// as a thousands separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	for _, m := range currencyMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", "'", "").Replace(s)
	if s == "" {
		return decimal.Zero, errEmptyValue
	}
	if canonicalAmount.MatchString(s) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q", errBadFormat, raw)
		}
		return d, nil
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if isGrouping(s, ",", lastComma) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errBadFormat, raw)
	}
	return d, nil
}

// isGrouping decides whether sep at index last separates thousands rather than decimals.
func isGrouping(s, sep string, last int) bool {
	if strings.Count(s, sep) > 1 {
		return true
	}
	intPart := strings.TrimLeft(s[:last], "+-")
	if intPart == "" || intPart == "0" {
		return false
	}
	return len(s)-last-1 == 3
}

// NormalizeCurrency upper-cases code and falls back to the company's base currency when
// the code is not one the company works with.
func NormalizeCurrency(raw string, company domain.Company) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "TL" {
		code = "TRY"
	}
	if company.SupportsCurrency(code) {
		return code
	}
	return strings.ToUpper(company.BaseCurrency)
}

// MapDebtType maps free-text debt types onto the canonical set. Canonical values map to
// themselves so that rows echoed back from an analysis keep their type.
func MapDebtType(raw string, fallback domain.DebtType) domain.DebtType {
	folded := foldASCII(raw)
	switch {
	case folded == string(domain.DebtTypeCurrentAccount):
		return domain.DebtTypeCurrentAccount
	case strings.Contains(folded, "cek"):
		return domain.DebtTypeCheque
	case strings.Contains(folded, "senet"):
		return domain.DebtTypePromissoryNote
	case fallback != "":
		return fallback
	default:
		return domain.DebtTypeCurrentAccount
	}
}

// RowIssue is a row-level validation failure.
type RowIssue struct {
	Code    domain.RowErrorCode
	Message string
}

// NormalizeRow canonicalizes one import row. It never fails the batch: structural problems
// come back as a RowIssue for that row only. Sales-rep resolution happens later.
func NormalizeRow(raw domain.ImportRow, company domain.Company) (domain.NormalizedRow, *RowIssue) {
	name := strings.TrimSpace(raw.CustomerName)
	if name == "" {
		return domain.NormalizedRow{}, &RowIssue{Code: domain.ErrCodeCustomerNameEmpty, Message: "customer name is empty"}
	}

	due, err := ParseDate(raw.DueDate)
	if err != nil {
		return domain.NormalizedRow{}, &RowIssue{Code: domain.ErrCodeInvalidDate, Message: fmt.Sprintf("invalid due date %q", raw.DueDate)}
	}

	var txDate string
	if strings.TrimSpace(raw.TransactionDate) != "" {
		t, err := ParseDate(raw.TransactionDate)
		if err != nil {
			return domain.NormalizedRow{}, &RowIssue{Code: domain.ErrCodeInvalidDate, Message: fmt.Sprintf("invalid transaction date %q", raw.TransactionDate)}
		}
		txDate = t.Format(domain.DueDateLayout)
	}

	amount, err := ParseAmount(raw.Amount)
	if err != nil || !amount.IsPositive() {
		return domain.NormalizedRow{}, &RowIssue{Code: domain.ErrCodeInvalidAmount, Message: fmt.Sprintf("amount must be a positive number, got %q", raw.Amount)}
	}
	if !domain.FitsAmountScale(amount) {
		return domain.NormalizedRow{}, &RowIssue{Code: domain.ErrCodeInvalidAmount, Message: fmt.Sprintf("amount %q has more than %d decimal places", raw.Amount, domain.AmountScale)}
	}

	return domain.NormalizedRow{
		CustomerName:    name,
		DueDate:         due.Format(domain.DueDateLayout),
		Amount:          amount,
		Currency:        NormalizeCurrency(raw.Currency, company),
		DebtType:        MapDebtType(raw.DebtType, company.DefaultDebtType),
		SalesRepName:    strings.TrimSpace(raw.SalesRepName),
		TransactionDate: txDate,
	}, nil
}
