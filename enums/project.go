package enums

type ProjectStatus string

const (
	ProjectStatusUpcoming  ProjectStatus = "upcoming"
	ProjectStatusOngoing   ProjectStatus = "ongoing"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type FundEntryType string

const (
	FundEntryDeposit FundEntryType = "deposit"
	FundEntryExpense FundEntryType = "expense"
)
