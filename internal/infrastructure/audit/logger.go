package audit

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/Udilainer/referral-project/domain"
)

// LogAuditLogger implements domain.AuditLogger by writing one
// key=value line per event through the standard logger. Events are
// observability only; nothing reads them back.
type LogAuditLogger struct {
	logger *log.Logger
}

// NewLogAuditLogger creates an audit logger backed by the given
// log.Logger; nil means the standard logger.
func NewLogAuditLogger(logger *log.Logger) domain.AuditLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &LogAuditLogger{logger: logger}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	if event == nil {
		return
	}

	var b strings.Builder
	b.WriteString(string(event.EventType))
	b.WriteString(":")
	if event.UserID != 0 {
		fmt.Fprintf(&b, " user_id=%d", event.UserID)
	}
	if event.Phone != "" {
		fmt.Fprintf(&b, " phone=%s", event.Phone)
	}
	fmt.Fprintf(&b, " success=%t", event.Success)
	if event.ErrorMsg != "" {
		fmt.Fprintf(&b, " error=%q", event.ErrorMsg)
	}
	for _, k := range sortedKeys(event.Metadata) {
		fmt.Fprintf(&b, " %s=%v", k, event.Metadata[k])
	}
	fmt.Fprintf(&b, " timestamp=%s", event.Timestamp.Format(time.RFC3339))

	l.logger.Print(b.String())
}

func sortedKeys(m map[string]interface{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
