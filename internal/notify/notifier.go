package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Notifier abstracts the delivery channel so email/SMS can replace the
// console sink later without touching the worker.
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{ log *zap.Logger }

func NewConsole(log *zap.Logger) *ConsoleNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConsoleNotifier{log: log}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	c.log.Info("notification", zap.String("subject", subject), zap.String("message", message))
	return nil
}

// HumanTimeRange renders a unix-seconds window for notification text.
func HumanTimeRange(startUnix, endUnix int64) string {
	st := time.Unix(startUnix, 0).Local()
	et := time.Unix(endUnix, 0).Local()
	return fmt.Sprintf("%s - %s", st.Format("2006-01-02 15:04"), et.Format("15:04"))
}
