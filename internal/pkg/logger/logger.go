package logger

import (
	"go.uber.org/zap"
)

// Init replaces the global zap logger. Debug mode gets the human readable
// development encoder.
func Init(mode string) (func(), error) {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "debug" || mode == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	undo := zap.ReplaceGlobals(l)
	return func() {
		//nolint:errcheck
		l.Sync()
		undo()
	}, nil
}
