package log

import (
	"os"

	"github.com/google/uuid"
	"github.com/lovetrip/crawler/internal/util"
	"github.com/nullseed/logruseq"
	"github.com/sirupsen/logrus"
)

var entry *logrus.Entry
var tail *TailHook

type Logger = *logrus.Entry

func InitLogger(config *util.Config) {

	logger := logrus.Logger{
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Level: logrus.DebugLevel,
	}

	if config.Environment.Value == "production" {
		logger.Formatter = &logrus.JSONFormatter{}
	} else {
		logger.Formatter = &logrus.TextFormatter{
			ForceColors:      true,
			FullTimestamp:    false,
			QuoteEmptyFields: true,
		}
	}

	if config.SeqUrl.Value != "" {
		seqHook := logruseq.NewSeqHook(config.SeqUrl.Value, logruseq.OptionAPIKey(config.SeqToken.Value))
		logger.AddHook(seqHook)
	} else {
		logger.Warn("logger running without seq hook")
	}

	// keep the last lines around so a run record can store its log tail
	tail = NewTailHook(100)
	logger.AddHook(tail)

	u := uuid.New().String()
	entry = logger.WithField("TraceId", u)
}

func AddGlobalField(name string, value interface{}) Logger {
	entry = entry.WithField(name, value)
	return entry
}

func GetLogger() Logger {
	return entry
}

// Tail returns the most recent log lines captured by the tail hook.
func Tail() []string {
	if tail == nil {
		return nil
	}

	return tail.Lines()
}
