package state

import "time"

// DefaultNotificationLimit bounds the log when no limit is configured.
const DefaultNotificationLimit = 100

// Notification is one user-visible message.
type Notification struct {
	Text string
	At   time.Time
}

type NotificationLog interface {
	// Add appends a message, dropping the oldest entries beyond the limit.
	Add(text string)
	// Latest returns the most recent message.
	Latest() (Notification, bool)
	// Entries returns the messages oldest first.
	Entries() []Notification
	// Newest returns the messages newest first.
	Newest() []Notification
	Len() int
}

type notificationLog struct {
	entries []Notification
	limit   int
	now     func() time.Time
}

func NewNotificationLog(limit int) NotificationLog {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	return &notificationLog{limit: limit, now: time.Now}
}

func (l *notificationLog) Add(text string) {
	l.entries = append(l.entries, Notification{Text: text, At: l.now()})
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

func (l *notificationLog) Latest() (Notification, bool) {
	if len(l.entries) == 0 {
		return Notification{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l *notificationLog) Entries() []Notification {
	return cloneNotifications(l.entries)
}

func (l *notificationLog) Newest() []Notification {
	out := make([]Notification, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

func (l *notificationLog) Len() int {
	return len(l.entries)
}

func cloneNotifications(entries []Notification) []Notification {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]Notification, len(entries))
	copy(dup, entries)
	return dup
}
