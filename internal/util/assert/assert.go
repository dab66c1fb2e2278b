package assert

import (
	"fmt"
	"os"

	"github.com/lovetrip/crawler/internal/log"
)

func assert(msg string, data ...interface{}) {
	fields := make(map[string]interface{})
	for i, d := range data {
		if i%2 == 1 {
			fields[fmt.Sprint(data[i-1])] = d
		}
	}

	logger := log.GetLogger()
	if logger != nil {
		logger.WithFields(fields).Fatal(msg)
	}

	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func Assert(truth bool, msg string, data ...any) {
	if !truth {
		assert(msg, data...)
	}
}

func NotNil(obj any, msg string, data ...any) {
	if obj != nil {
		return
	}

	assert(msg, data...)
}

func NoError(err error, msg string, data ...any) {
	if err != nil {
		data = append(data, "error", err)
		assert(msg, data...)
	}
}
