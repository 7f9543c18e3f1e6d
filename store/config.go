package store

import "os"

// Config holds configuration for the Client.
type Config struct {
	// BusinessTable is the DynamoDB table for the business collection.
	// Default: "cashbook_business"
	BusinessTable string

	// BooksTable is the DynamoDB table for the books collection.
	// Default: "cashbook_books"
	BooksTable string

	// CashInTable is the DynamoDB table for the cash_in collection.
	// Default: "cashbook_cash_in"
	CashInTable string

	// CashOutTable is the DynamoDB table for the cash_out collection.
	// Default: "cashbook_cash_out"
	CashOutTable string

	// LookupIndex is the name of the per-table GSI used for
	// secondary-key lookups. The index is keyed on the lookup attribute
	// with created_at as the range key.
	// Default: "lookup-index"
	LookupIndex string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BusinessTable: "cashbook_business",
		BooksTable:    "cashbook_books",
		CashInTable:   "cashbook_cash_in",
		CashOutTable:  "cashbook_cash_out",
		LookupIndex:   "lookup-index",
	}
}

// ConfigFromEnv reads table and index names from the environment,
// falling back to defaults for unset variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CASHBOOK_BUSINESS_TABLE"); v != "" {
		cfg.BusinessTable = v
	}
	if v := os.Getenv("CASHBOOK_BOOKS_TABLE"); v != "" {
		cfg.BooksTable = v
	}
	if v := os.Getenv("CASHBOOK_CASH_IN_TABLE"); v != "" {
		cfg.CashInTable = v
	}
	if v := os.Getenv("CASHBOOK_CASH_OUT_TABLE"); v != "" {
		cfg.CashOutTable = v
	}
	if v := os.Getenv("CASHBOOK_LOOKUP_INDEX"); v != "" {
		cfg.LookupIndex = v
	}
	return cfg
}

// validate ensures config values are usable, filling in defaults.
func (c *Config) validate() {
	def := DefaultConfig()
	if c.BusinessTable == "" {
		c.BusinessTable = def.BusinessTable
	}
	if c.BooksTable == "" {
		c.BooksTable = def.BooksTable
	}
	if c.CashInTable == "" {
		c.CashInTable = def.CashInTable
	}
	if c.CashOutTable == "" {
		c.CashOutTable = def.CashOutTable
	}
	if c.LookupIndex == "" {
		c.LookupIndex = def.LookupIndex
	}
}
