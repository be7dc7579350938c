package logger

import "github.com/sirupsen/logrus"

var (
	// App carries service-level events (sync runs, lifecycle transitions).
	App *logrus.Logger
	// Request carries the HTTP access log.
	Request *logrus.Logger
)

func Init() {
	App = NewLogger("app")
	Request = NewLogger("request")
}
