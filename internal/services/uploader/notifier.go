package uploader

import "go.uber.org/zap"

// Notifier receives a fire-and-forget user-facing message once per artifact
// that reaches the uploaded status.
type Notifier interface {
	Notify(message string)
}

type logNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(log *zap.SugaredLogger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(message string) {
	n.log.Info(message)
}
