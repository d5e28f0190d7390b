package sqlite

// Schema DDL for the journal store. Column names and order are part of the
// on-disk format.
const (
	createJournalItems = `CREATE TABLE IF NOT EXISTS JournalItems (
    Id INTEGER PRIMARY KEY AUTOINCREMENT,
    EntryDate TEXT NOT NULL,
    Content TEXT NOT NULL,
    PrimaryMood TEXT,
    SecondaryMoods TEXT,
    Tags TEXT,
    CreatedAt TEXT NOT NULL
);`

	// Non-unique: per-date uniqueness is an application rule, see
	// types.Config.UniqueDates.
	idxJournalItemsEntryDate = `CREATE INDEX IF NOT EXISTS idx_journalitems_entrydate ON JournalItems(EntryDate);`
)

// schemaDDL lists the statements Initialize runs, in order.
var schemaDDL = []string{
	createJournalItems,
	idxJournalItemsEntryDate,
}

// Entry statements. Values are always bound, never interpolated.
const (
	entryColumns = "Id, EntryDate, Content, PrimaryMood, SecondaryMoods, Tags, CreatedAt"

	insertEntry = `INSERT INTO JournalItems (EntryDate, Content, PrimaryMood, SecondaryMoods, Tags, CreatedAt)
VALUES (?, ?, ?, ?, ?, ?)`

	// EntryDate, CreatedAt and Id are never updated.
	updateEntry = `UPDATE JournalItems
SET Content = ?, PrimaryMood = ?, SecondaryMoods = ?, Tags = ?
WHERE Id = ?`

	selectAllEntries    = "SELECT " + entryColumns + " FROM JournalItems ORDER BY EntryDate DESC, Id ASC"
	selectEntryByID     = "SELECT " + entryColumns + " FROM JournalItems WHERE Id = ?"
	selectEntryByDate   = "SELECT " + entryColumns + " FROM JournalItems WHERE EntryDate = ? ORDER BY Id ASC LIMIT 1"
	selectDateExists    = "SELECT 1 FROM JournalItems WHERE EntryDate = ? LIMIT 1"
	selectEntryCount    = "SELECT COUNT(*) FROM JournalItems"
	deleteEntryByID     = "DELETE FROM JournalItems WHERE Id = ?"
	deleteAllEntries    = "DELETE FROM JournalItems"
	selectEntriesPrefix = "SELECT " + entryColumns + " FROM JournalItems"
)
