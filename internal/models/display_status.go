package models

// DisplayStatus is the derived Resolved/Pending marker shown on item
// listings. It is computed from child claims/reports and never stored.
type DisplayStatus string

const (
	DisplayStatusResolved DisplayStatus = "Resolved"
	DisplayStatusPending  DisplayStatus = "Pending"
)
