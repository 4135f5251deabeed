package screen

import (
	tea "github.com/charmbracelet/bubbletea"

	appstate "github.com/ledgerkit/ledger-tui/internal/state"
	"github.com/ledgerkit/ledger-tui/internal/theme"
	"github.com/ledgerkit/ledger-tui/internal/ui/widget"
)

const (
	notificationsTitle = "Notifications"
	notificationsHint  = " <Esc> to close this window "
)

// Notifications lists logged messages, newest first.
type Notifications struct {
	Base
	log appstate.NotificationLog
	out Outbox
}

func NewNotifications(log appstate.NotificationLog, out Outbox) *Notifications {
	return &Notifications{log: log, out: out}
}

func (n *Notifications) Kind() Kind { return KindNotifications }

// Dismisses reports whether key closes the popup.
func Dismisses(key string) bool {
	switch key {
	case "esc", "q", "n", "N":
		return true
	}
	return false
}

func (n *Notifications) HandleKey(msg tea.KeyMsg) error {
	if Dismisses(msg.String()) {
		n.out.Post(Exit())
	}
	return nil
}

func (n *Notifications) View(width, height int) string {
	entries := n.log.Newest()
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, " "+e.Text)
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Render(theme.Default().Empty, " No notifications"))
	}
	return widget.Frame{
		Title:       notificationsTitle,
		Hint:        notificationsHint,
		Lines:       lines,
		BorderStyle: theme.Default().PopupBorder,
		BodyStyle:   theme.Default().Error,
	}.Render(width, height)
}
