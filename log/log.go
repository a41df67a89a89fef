package log

import (
	"io"
	"io/ioutil"
	"log"
	"os"
)

var (
	Trace   *log.Logger
	Info    *log.Logger
	Warning *log.Logger
	Error   *log.Logger
)

func init() {
	traceOut := ioutil.Discard
	if os.Getenv("DOODLE_TRACE") == "1" {
		traceOut = os.Stdout
	}
	Init(traceOut, os.Stdout, os.Stdout, os.Stderr)
}

// Init points each level at its own writer.
func Init(traceHandle, infoHandle, warningHandle, errorHandle io.Writer) {
	Trace = log.New(traceHandle, "TRACE: ", log.Ldate|log.Ltime|log.Lshortfile)
	Info = log.New(infoHandle, "INFO: ", log.Ldate|log.Ltime)
	Warning = log.New(warningHandle, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(errorHandle, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// EnableTrace turns trace output on after startup, e.g. for the -v flag.
func EnableTrace() {
	Trace.SetOutput(os.Stdout)
}

// Silence discards every level. Used by tests.
func Silence() {
	Init(ioutil.Discard, ioutil.Discard, ioutil.Discard, ioutil.Discard)
}
