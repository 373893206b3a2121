package store

import (
	"path/filepath"

	"cleantrack/internal/core"
)

// Data file names under the data directory. These names are part of the
// on-disk contract and shared with the backup tooling.
const (
	EntriesFile  = "entries.json"
	ExpensesFile = "expenses.json"
	ClientsFile  = "clients.json"
	ConfigFile   = "config.json"
)

// DataFiles lists every file the application persists.
var DataFiles = []string{EntriesFile, ExpensesFile, ClientsFile, ConfigFile}

// Stores bundles the collections and settings store for one data directory.
type Stores struct {
	Entries  *Collection[core.Entry]
	Expenses *Collection[core.Expense]
	Clients  *Collection[core.Client]
	Settings *SettingsStore
}

func Open(dataDir string) *Stores {
	return &Stores{
		Entries: NewCollection(filepath.Join(dataDir, EntriesFile),
			func(e *core.Entry) *string { return &e.ID }),
		Expenses: NewCollection(filepath.Join(dataDir, ExpensesFile),
			func(x *core.Expense) *string { return &x.ID }),
		Clients: NewCollection(filepath.Join(dataDir, ClientsFile),
			func(c *core.Client) *string { return &c.ID }),
		Settings: NewSettingsStore(filepath.Join(dataDir, ConfigFile)),
	}
}
