// Package ui contains the application controller that drives the ledger
// dashboard. The controller owns every piece of mutable UI state and is run by
// a single goroutine.
//
// Event flow:
//   - The input bridge (internal/input) delivers one Event at a time over a
//     channel. Run renders a frame, waits for the next event and hands it to
//     HandleEvent.
//   - HandleEvent resolves quit and resize events directly. Key events pass the
//     quit confirmation first, then global hotkeys, then navigation, and finally
//     the raw key reaches the top screen. Popups only see their dismiss keys.
//   - Screens never touch the stack. They post Notify and Exit messages to a
//     mailbox that the controller drains after each event.
//
// State ownership:
//   - Screens live on internal/ui/screen.Stack. The account screen wraps the
//     table controller in internal/ui/table, which holds rows, selection and
//     the edit buffer.
//   - Notifications are kept in internal/state.NotificationLog. The newest one
//     is shown in the footer; the notifications popup lists all of them.
//   - Storage calls run through the internal/ui/command bus so every write is
//     traced.
//
// The Harness type feeds messages through the same translation the bridge
// uses, which keeps controller tests free of goroutines.
package ui
