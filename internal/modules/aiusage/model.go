// README: Monthly language model allowance per customer (sender id).
package aiusage

import "errors"

// ErrInsufficientTokens is returned when a customer has no tokens remaining for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of tokens granted per month when none is configured.
const DefaultTokens = 100
