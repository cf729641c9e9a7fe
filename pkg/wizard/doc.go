// Package wizard implements the quote wizard state machine: a closed set of
// mutation operations over domain.FormState, the final-step validation gate,
// and the submission flow.
//
// Lifecycle:
//
//	STEP(1..4)  selecting features/sections
//	STEP(5)     client info + privacy gate
//	SUBMITTING  awaiting the notifier result
//	CONFIRMED   terminal until an explicit reset
//
// Every price-affecting operation recomputes the total inside the same
// call, so the stored state never carries a stale price.
package wizard
