package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier only logs messages. It stands in when no SMS gateway is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, phoneNumber, message string) error {
	n.logger.Info("SMS gateway not configured, message logged only",
		zap.String("to", phoneNumber),
		zap.String("body", message),
	)
	return nil
}
