package logging

import "go.uber.org/zap"

// New creates a new zap logger named after the component using it
func New(component string) *zap.SugaredLogger {
	return zap.L().Named(component).Sugar()
}
