package notifier

import (
	"context"
	"fmt"
	"strings"

	"smart_plant/internal/logger"
)

// Notifier delivers a push message to a single device token.
type Notifier interface {
	Send(ctx context.Context, token, title, body string) error
}

// DeliveryError reports a failed delivery to one token. It never affects other tokens.
type DeliveryError struct {
	Token string
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver to %s: %v", e.Token, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ValidToken reports whether token looks like an Expo push token.
func ValidToken(token string) bool {
	for _, prefix := range []string{"ExponentPushToken[", "ExpoPushToken["} {
		if strings.HasPrefix(token, prefix) && strings.HasSuffix(token, "]") && len(token) > len(prefix)+1 {
			return true
		}
	}
	return false
}

// LogNotifier only logs messages. Used when no push provider is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, token, title, body string) error {
	if n.log != nil {
		n.log.Infow("push_notification", "token", token, "title", title, "body", body)
	}
	return nil
}
