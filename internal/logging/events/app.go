package events

import "github.com/ledgerkit/ledger-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) State(from, to string) {
	logging.Trace("app.state", map[string]interface{}{"from": from, "to": to})
}

func (AppTracer) Notify(text string) {
	logging.Trace("app.notify", map[string]interface{}{"text": text})
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", map[string]interface{}{"reason": reason})
}
