package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// output is swappable so tests can capture log lines.
var output io.Writer = os.Stdout

// Info writes an info-level structured log line.
func Info(msg string, fields map[string]any) {
	emit("info", msg, fields)
}

// Warn writes a warn-level structured log line.
func Warn(msg string, fields map[string]any) {
	emit("warn", msg, fields)
}

// Error writes an error-level structured log line.
func Error(msg string, fields map[string]any) {
	emit("error", msg, fields)
}

func emit(level, msg string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(output, `{"ts":%q,"level":"error","msg":"logger marshal failed","err":%q}`+"\n",
			time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(output, string(data))
}
