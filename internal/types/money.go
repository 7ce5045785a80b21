// README: Number formatting shared by customer-facing replies (BRL prices, mileage).
package types

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Replies keep the dealership's historical layout: comma thousands separator, dot decimals.
var printer = message.NewPrinter(language.English)

// BRL renders a price as "R$ 90,000.00".
func BRL(amount float64) string {
	return printer.Sprintf("R$ %.2f", amount)
}

// Kilometers renders a mileage as "35,000 km".
func Kilometers(km int) string {
	return printer.Sprintf("%d km", km)
}
