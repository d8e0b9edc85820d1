package domain

// Models lists every persisted type, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Sequence{},
		&Proposal{},
		&Vote{},
		&Investment{},
		&VestingSchedule{},
		&ProposalEvent{},
		&Account{},
		&Token{},
		&Balance{},
		&Allowance{},
		&Pool{},
		&Position{},
	}
}
