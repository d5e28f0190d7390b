package types

// EntriesTable is the name of the single table holding journal entries.
const EntriesTable = "JournalItems"

// EntryColumns lists the JournalItems columns in schema order.
var EntryColumns = []string{
	"Id",
	"EntryDate",
	"Content",
	"PrimaryMood",
	"SecondaryMoods",
	"Tags",
	"CreatedAt",
}
