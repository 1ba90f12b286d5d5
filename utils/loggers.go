package utils

import (
	"log"
	"os"
)

var (
	infoLogger    *log.Logger
	warningLogger *log.Logger
	errorLogger   *log.Logger
)

func init() {
	infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	warningLogger = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func LogInfo(message string) {
	infoLogger.Output(2, message)
}

func LogWarning(message string) {
	warningLogger.Output(2, message)
}

func LogError(message string, err error) {
	if err != nil {
		errorLogger.Output(2, message+": "+err.Error())
	} else {
		errorLogger.Output(2, message)
	}
}

// LogCollaboratorError logs a failure from a backing collaborator with
// credential-like substrings redacted. The raw error must not travel
// further up than this call.
func LogCollaboratorError(message string, err error) {
	if err == nil {
		errorLogger.Output(2, message)
		return
	}
	errorLogger.Output(2, message+": "+RedactSecrets(err.Error()))
}
