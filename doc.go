// Package smic reconstructs the historical evolution of the fund's
// portfolio from its transaction ledger.
//
// The portfolio starts as a basket of Vanguard sector ETFs plus fixed
// income and cash, and is progressively modified by discrete ETF-to-stock
// swaps: selling part of a sector's ETF to buy an individual stock in the
// same sector, dollar-neutral at execution.
//
// The engine is a pure batch computation: a Ledger and a Quotes snapshot
// go in, holdings, a daily valuation series and derived metrics come out.
// Re-running over the same inputs produces identical output. There is no
// rebalancing: weights drift freely with relative price movement.
//
// The pipeline is Ledger -> BuildHoldings -> Valuate -> Derive, with
// Summary, YTD and DriftTable shaping the results for reporting.
package smic
