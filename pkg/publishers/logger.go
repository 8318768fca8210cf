package publishers

import "github.com/samvad-hq/mealdb/pkg/mealdb"

// Logger is the structured logging surface shared with the mealdb client.
type Logger = mealdb.Logger

type nopLogger struct{}

func (nopLogger) InfoObj(string, string, interface{})  {}
func (nopLogger) DebugObj(string, string, interface{}) {}
func (nopLogger) WarnObj(string, string, interface{})  {}
func (nopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
