package tui

// ledgerChangedMsg reports a successful write; status is shown to the user.
type ledgerChangedMsg struct {
	status string
}

// noChangeMsg reports a write that had nothing to do.
type noChangeMsg struct {
	status string
}

// errorMsg carries a failed write.
type errorMsg struct {
	err error
}
