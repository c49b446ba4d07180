// Package agency keeps the books of a small agent-run cash collection
// business.
//
// The agent registers customers, collects cash from them, and deposits the
// collected cash at the bank. The package provides:
//   - Ledger: the single owner of customers, collections, deposits, agent
//     profile and settings, saved as a whole to a KV after every change.
//   - Code generators: sequential customer short codes and day bucketed
//     receipt numbers (YYYYMMDD followed by a 3 digits sequence).
//   - CSV codec: import and export of customers, export of collections and
//     deposits, plus an XLSX workbook export.
//   - Reports: cash totals, balance in hand, and pluggable due reminders.
//
// Storage implementations live in the kvstore package, and the agc command
// line tool in the cmd package.
package agency
