package http

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.French)

// formatMoney renders an amount in euros with French grouping and two decimals.
func formatMoney(amount float64) string {
	return moneyPrinter.Sprintf("%v €", number.Decimal(amount, number.Scale(2)))
}
