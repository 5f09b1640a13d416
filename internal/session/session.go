// Package session owns the per-view state of the contacts and upload screens.
//
// Each view is a single explicit state struct driven by a reducer:
//
//	Reduce(state, event) -> (state, effects)
//
// Reducers are pure. Network work is described by the returned effects and
// carried out by the caller, which feeds the outcome back in as a
// *Completed event. This keeps every user interaction testable without a
// terminal or a server.
package session

// MessageKind tells the view how to colour a status line.
type MessageKind int

const (
	MsgNone MessageKind = iota
	MsgInfo
	MsgWarning
	MsgError
	MsgSuccess
)

// Message is the single status line a view shows.
type Message struct {
	Kind MessageKind
	Text string
	// Detail is optional secondary text, e.g. where an export was written.
	Detail string
}

// IsZero reports whether there is nothing to show.
func (m Message) IsZero() bool {
	return m.Kind == MsgNone && m.Text == ""
}

func info(text string) Message    { return Message{Kind: MsgInfo, Text: text} }
func warning(text string) Message { return Message{Kind: MsgWarning, Text: text} }
func failure(text string) Message { return Message{Kind: MsgError, Text: text} }
func success(text string) Message { return Message{Kind: MsgSuccess, Text: text} }

// Event is an input to a reducer.
type Event interface{ isEvent() }

// Effect is work a reducer asks the caller to perform.
type Effect interface{ isEffect() }
