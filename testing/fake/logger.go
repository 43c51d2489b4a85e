package fake

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// LogField is a field that a log entry must carry, in addition to its
// message.
type LogField struct {
	Key   string
	Value interface{}
}

// Field returns a log field expectation.
func Field(key string, value interface{}) LogField {
	return LogField{Key: key, Value: value}
}

// WaitLog returns a logger and a function that blocks until the logger has
// written an entry with the message and fields, or fails the test after the
// timeout.
func WaitLog(msg string, timeout time.Duration, fields ...LogField) (zerolog.Logger, func(t *testing.T)) {
	reader, writer := io.Pipe()
	seen := new(bytes.Buffer)

	found := make(chan struct{})
	var lock sync.Mutex

	go func() {
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			line := scanner.Bytes()

			lock.Lock()
			seen.Write(line)
			seen.WriteByte('\n')
			lock.Unlock()

			if matchEntry(line, msg, fields) {
				close(found)
				break
			}
		}

		// The logger must never block the code under test.
		io.Copy(ioutil.Discard, reader)
	}()

	wait := func(t *testing.T) {
		select {
		case <-found:
			writer.Close()
		case <-time.After(timeout):
			writer.Close()

			lock.Lock()
			defer lock.Unlock()

			t.Fatalf("entry %q not found in:\n%s", msg, seen.String())
		}
	}

	return zerolog.New(writer), wait
}

// CheckLog returns a logger and a check function. When called, the function
// verifies that the logger has written an entry with the message and fields.
func CheckLog(msg string, fields ...LogField) (zerolog.Logger, func(t *testing.T)) {
	buffer := new(bytes.Buffer)

	check := func(t *testing.T) {
		for _, line := range bytes.Split(buffer.Bytes(), []byte("\n")) {
			if matchEntry(line, msg, fields) {
				return
			}
		}

		require.Failf(t, "log entry not found", "entry %q not found in:\n%s",
			msg, buffer.String())
	}

	return zerolog.New(buffer), check
}

func matchEntry(line []byte, msg string, fields []LogField) bool {
	entry := make(map[string]interface{})

	err := json.Unmarshal(line, &entry)
	if err != nil {
		return false
	}

	if entry[zerolog.MessageFieldName] != msg {
		return false
	}

	for _, field := range fields {
		value, ok := entry[field.Key]
		if !ok || fmt.Sprint(value) != fmt.Sprint(field.Value) {
			return false
		}
	}

	return true
}
