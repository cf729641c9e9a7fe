// Package domain contains the core types of the quote wizard: the catalog
// entries (features and sections), the mutable form state, and the
// submission snapshot sent to the notification endpoint.
//
// Types here carry no behavior beyond construction and simple set
// accessors; all mutation goes through the wizard engine.
package domain
