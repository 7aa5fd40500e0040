package event

// WorkerUnassigned fires when stuck recovery revokes an automatically
// assigned workplace. Manual assignments never trigger it.
type WorkerUnassigned struct {
	Citizen   uint64
	Workplace uint64
	Reason    string
}

// CitizenStarving fires the cycle starvation is first detected for a citizen.
type CitizenStarving struct {
	Citizen uint64
}

// ActivityFinished fires when a resumable busy action (chat, nap, campfire,
// tavern) runs its timer down to zero.
type ActivityFinished struct {
	Citizen  uint64
	Activity string
}

// VisitorLeft fires when a transient visitor entity is removed from the
// settlement by the behavior pass.
type VisitorLeft struct {
	Visitor uint64
}
