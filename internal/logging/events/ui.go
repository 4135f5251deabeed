package events

import "github.com/ledgerkit/ledger-tui/internal/logging"

type TableTracer struct{}

type ScreenTracer struct{}

type InputTracer struct{}

type CommandTracer struct{}

type StoreTracer struct{}

var (
	Table   = TableTracer{}
	Screen  = ScreenTracer{}
	Input   = InputTracer{}
	Command = CommandTracer{}
	Store   = StoreTracer{}
)

func (TableTracer) Cursor(row, column, offset int) {
	logging.Trace("table.cursor", map[string]interface{}{"row": row, "column": column, "offset": offset})
}

func (TableTracer) EditStart(row, column int, seed string) {
	logging.Trace("table.edit.start", map[string]interface{}{"row": row, "column": column, "seed": seed})
}

func (TableTracer) EditCancel(row, column int) {
	logging.Trace("table.edit.cancel", map[string]interface{}{"row": row, "column": column})
}

func (TableTracer) Commit(row, column int, value string) {
	logging.Trace("table.edit.commit", map[string]interface{}{"row": row, "column": column, "value": value})
}

func (TableTracer) Delete(row int, id int64) {
	logging.Trace("table.delete", map[string]interface{}{"row": row, "id": id})
}

func (TableTracer) Sync(count int) {
	logging.Trace("table.sync", map[string]interface{}{"count": count})
}

func (ScreenTracer) Push(kind string, depth int) {
	logging.Trace("screen.push", map[string]interface{}{"kind": kind, "depth": depth})
}

func (ScreenTracer) Pop(kind string, depth int) {
	logging.Trace("screen.pop", map[string]interface{}{"kind": kind, "depth": depth})
}

func (ScreenTracer) Search(query string, row int) {
	logging.Trace("screen.search", map[string]interface{}{"query": query, "row": row})
}

func (InputTracer) Start(buffer int) {
	logging.Trace("input.start", map[string]interface{}{"buffer": buffer})
}

func (InputTracer) Stop(reason string) {
	logging.Trace("input.stop", map[string]interface{}{"reason": reason})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}

func (StoreTracer) Open(path string) {
	logging.Trace("store.open", map[string]interface{}{"path": path})
}

func (StoreTracer) Put(id int64, inserted bool) {
	logging.Trace("store.put", map[string]interface{}{"id": id, "inserted": inserted})
}

func (StoreTracer) Delete(ids []int64) {
	logging.Trace("store.delete", map[string]interface{}{"ids": ids})
}
