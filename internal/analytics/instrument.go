// Package analytics computes derived performance metrics over journaled
// trades. Every function is a pure reduction over its input slice: no
// mutation, no I/O, and safe defaults for empty input.
package analytics

import "strings"

// SymbolProperties describes how an instrument's prices map to pips and
// contract units.
type SymbolProperties struct {
	PipMultiplier float64
	ContractSize  float64
	Class         string // "forex" or "metal"
}

// GetSymbolProperties resolves an instrument symbol to its pip scale and
// contract size. Resolution never fails: unrecognized symbols (indices,
// crypto tickers) fall through to standard forex scaling, which is a
// documented approximation rather than an error.
func GetSymbolProperties(pair string) SymbolProperties {
	if strings.Contains(pair, "JPY") {
		return SymbolProperties{PipMultiplier: 100, ContractSize: 100000, Class: "forex"}
	}
	switch pair {
	case "XAU/USD":
		// 1 lot = 100 oz, pip = 0.01
		return SymbolProperties{PipMultiplier: 100, ContractSize: 100, Class: "metal"}
	case "XAG/USD":
		// 1 lot = 5000 oz
		return SymbolProperties{PipMultiplier: 100, ContractSize: 5000, Class: "metal"}
	}
	return SymbolProperties{PipMultiplier: 10000, ContractSize: 100000, Class: "forex"}
}

// quoteCurrency returns the quote side of a "BASE/QUOTE" symbol, or ""
// for symbols without a slash (indices, single tickers).
func quoteCurrency(pair string) string {
	if i := strings.Index(pair, "/"); i >= 0 {
		return pair[i+1:]
	}
	return ""
}
