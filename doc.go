// Package pricedash provides the building blocks of a small market dashboard:
// it loads historical closing prices for a fixed universe of equities, lets a
// user narrow them down by instrument and date range, and measures how a
// buy-and-hold portfolio would have performed over that range.
//
// The flow is strictly sequential:
//   - Loading: a Loader fetches a PriceTable from a Provider (see the yahoo
//     and eodhd packages) and memoizes it for the lifetime of the process.
//   - Filtering: Filter narrows a PriceTable down to a Selection of tickers
//     and dates. The result is always a multi-column table, even for a single
//     ticker.
//   - Performance: NewPortfolio invests the same amount in each selected
//     ticker and computes each total return and the portfolio return.
//   - Reporting: NewReport formats the returns and classifies them as
//     positive, negative or neutral.
//
// A Dashboard holds the user's Selection and re-runs the flow each time it
// changes. The renderer package turns a View into charts, markdown or colored
// text, and the cmd package exposes it all as the `pdash` command line tool
// and web dashboard.
package pricedash
