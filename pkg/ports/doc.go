// Package ports defines the driven-side interfaces of the quote wizard:
// session persistence and the external notification channel. Adapters live
// under internal/adapters.
package ports
