// Package diary holds the edit-session lifecycle behind the Bloom diary screen.
//
// # Overview
//
// The screen shows one selected day: that day's question with its answer and
// the day's done list. Every edit happens in a modal over a working copy, and
// nothing reaches the server until the user commits. The package is
// presentation-free; the ui package renders Snapshot values and routes keys to
// the operations here.
//
// # Core Types
//
// FieldSession:
//   - Original and working value of one editable thing
//   - Dirty is computed, never stored
//
// RecordStore:
//   - Cache of the done list for one date
//   - Replaced only by a successful server read
//   - Mutations are followed by a full reload, never applied locally
//
// QuestionEditor / TaskEditor:
//   - Editors a modal can hold through the Editor interface
//   - CommitEdit writes first and marks committed only on success
//
// ModalSession:
//   - Closed, Open, Confirming
//   - Closing a dirty editor asks save, discard or cancel
//
// Screen:
//   - Selected date, bootstrap of today's question, delete confirmation
//
// # Failure Handling
//
// Transport failures are surfaced once through the Notifier and returned as
// *Failure. State that existed before the failed call is left as it was: the
// cache keeps its previous list and a failed commit leaves the editor dirty.
// Question fetch failures are the one exception: the entry silently resets to
// empty, since a missing question is an ordinary state for past days.
//
// # Concurrency
//
// All types are safe for concurrent use. The ui package runs remote calls as
// bubbletea commands, which execute on their own goroutines, so a fetch for an
// old date can finish after a newer one. The store tags loads with a sequence
// number and the screen tags question loads with their date; answers that lose
// the race are dropped.
package diary
