package screen

import (
	"errors"
	"strings"
	"testing"

	appstate "github.com/ledgerkit/ledger-tui/internal/state"
	"github.com/ledgerkit/ledger-tui/internal/store"
	"github.com/ledgerkit/ledger-tui/internal/testutil"
	"github.com/ledgerkit/ledger-tui/internal/ui/state"
)

func newTestAccount(t *testing.T, rows int) (*Account, *Mailbox, *testutil.FlakyStore) {
	t.Helper()
	inner := store.NewMemory()
	testutil.Seed(t, inner, rows)
	flaky := testutil.NewFlakyStore(inner)
	box := &Mailbox{}
	a := NewAccount(flaky, box, nil)
	if err := a.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	return a, box, flaky
}

func TestAccountQuitPostsExit(t *testing.T) {
	a, box, _ := newTestAccount(t, 1)
	a.HandleKey(testutil.Key("q"))
	msgs := box.Drain()
	if len(msgs) != 1 || msgs[0].Kind != MessageExit {
		t.Fatalf("expected exit message, got %+v", msgs)
	}
}

func TestAccountEditingCapturesLetters(t *testing.T) {
	a, box, _ := newTestAccount(t, 1)
	a.HandleNav(state.NavRight)
	a.HandleNav(state.NavRight)
	a.HandleNav(state.NavInteract)
	if !a.Capturing() {
		t.Fatalf("expected capturing while editing")
	}
	a.HandleKey(testutil.Key("q"))
	a.HandleKey(testutil.Key("d"))
	if len(box.Drain()) != 0 {
		t.Fatalf("expected no messages while editing")
	}
	if got := a.Table().Buffer().Text(); got != "qd" {
		t.Fatalf("expected letters typed into buffer, got %q", got)
	}
}

func TestAccountDeleteError(t *testing.T) {
	a, _, flaky := newTestAccount(t, 2)
	flaky.Fail("delete", errors.New("locked"))
	err := a.HandleKey(testutil.Key("d"))
	if !errors.Is(err, store.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !a.Unsaved() {
		t.Fatalf("expected unsaved after failed delete")
	}
}

func TestAccountSearchJumpsAndRestores(t *testing.T) {
	a, _, _ := newTestAccount(t, 5)
	a.HandleKey(testutil.Key("/"))
	if !a.Searching() || !a.Capturing() {
		t.Fatalf("expected search mode")
	}
	for _, k := range testutil.Keys("#", "4") {
		a.HandleKey(k)
	}
	if got := a.Table().Selection().Row(); got != 3 {
		t.Fatalf("expected jump to row 3, got %d", got)
	}
	if out := a.View(70, 10); !strings.Contains(out, "/ #4") {
		t.Fatalf("expected search prompt in view:\n%s", out)
	}
	a.HandleNav(state.NavCancel)
	if a.Searching() {
		t.Fatalf("expected search closed")
	}
	if got := a.Table().Selection().Row(); got != 0 {
		t.Fatalf("expected row restored to 0, got %d", got)
	}

	a.HandleKey(testutil.Key("/"))
	a.HandleKey(testutil.Key("5"))
	a.HandleNav(state.NavInteract)
	if got := a.Table().Selection().Row(); got != 4 {
		t.Fatalf("expected confirmed jump to row 4, got %d", got)
	}
}

func TestNotificationsDismiss(t *testing.T) {
	log := appstate.NewNotificationLog(10)
	log.Add("Error: first")
	log.Add("Error: second")
	box := &Mailbox{}
	n := NewNotifications(log, box)
	out := n.View(40, 6)
	if strings.Index(out, "second") > strings.Index(out, "first") {
		t.Fatalf("expected newest first:\n%s", out)
	}
	if !strings.Contains(out, "Notifications") {
		t.Fatalf("expected title:\n%s", out)
	}
	n.HandleKey(testutil.Key("j"))
	if len(box.Drain()) != 0 {
		t.Fatalf("expected j to be ignored")
	}
	n.HandleKey(testutil.Key("esc"))
	if msgs := box.Drain(); len(msgs) != 1 || msgs[0].Kind != MessageExit {
		t.Fatalf("expected exit, got %+v", msgs)
	}
}
