package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

const (
	environmentVariableHTTPPort         = "HTTP_PORT"
	environmentVariablePort             = "PORT"
	environmentVariableDatabaseURL      = "DATABASE_URL"
	environmentVariableMongoURL         = "MONGO_URL"
	environmentVariableFirestoreProject = "FIRESTORE_PROJECT"
	environmentVariableWordBackend      = "WORD_BACKEND"
	environmentVariableResultBackend    = "RESULT_BACKEND"
	environmentVariableJWTSecret        = "JWT_SECRET"
	environmentVariableJamoWeightsFile  = "JAMO_WEIGHTS_FILE"
	environmentVariableDebugGame        = "DEBUG_MESSAGES"
)

// mainFlags are the configuration options which can be easily configured
// at startup for different environments.
type mainFlags struct {
	httpPort         int
	databaseURL      string
	mongoURL         string
	firestoreProject string
	wordBackend      string
	resultBackend    string
	jwtSecret        string
	jamoWeightsFile  string
	debugGame        bool
}

// usage prints how to run the server to the flagset's output.
func usage(fs *flag.FlagSet) {
	envVars := []string{
		environmentVariableHTTPPort,
		environmentVariableDatabaseURL,
		environmentVariableMongoURL,
		environmentVariableFirestoreProject,
		environmentVariableWordBackend,
		environmentVariableResultBackend,
		environmentVariableJWTSecret,
		environmentVariableJamoWeightsFile,
		environmentVariableDebugGame,
	}
	fmt.Fprintf(fs.Output(), "Runs the server\n")
	fmt.Fprintf(fs.Output(), "Reads environment variables when possible: [%s]\n", strings.Join(envVars, ","))
	fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
	fs.PrintDefaults()
}

// newFlagSet creates a flagSet that populates the specified mainFlags.
func (m *mainFlags) newFlagSet(osLookupEnvFunc func(string) (string, bool), portOverride *int) *flag.FlagSet {
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	fs.Usage = func() {
		usage(fs) // [lazy evaluation]
	}
	envValue := func(key string) string {
		if envValue, ok := osLookupEnvFunc(key); ok {
			return envValue
		}
		return ""
	}
	envValueInt := func(key string, defaultValue int) int {
		v1 := envValue(key)
		v2, err := strconv.Atoi(v1)
		if err != nil {
			return defaultValue
		}
		return v2
	}
	envPresent := func(key string) bool {
		_, ok := osLookupEnvFunc(key)
		return ok
	}
	fs.IntVar(&m.httpPort, "http-port", envValueInt(environmentVariableHTTPPort, 8000), "The TCP port for server http requests.")
	fs.IntVar(portOverride, "port", envValueInt(environmentVariablePort, 0), "The port to run the server on.  Overrides the -http-port flag.")
	fs.StringVar(&m.databaseURL, "data-source", envValue(environmentVariableDatabaseURL), "The data source to the PostgreSQL database (connection URI).")
	fs.StringVar(&m.mongoURL, "mongo-url", envValue(environmentVariableMongoURL), "The connection URI of the mongodb instance.")
	fs.StringVar(&m.firestoreProject, "firestore-project", envValue(environmentVariableFirestoreProject), "The google cloud project id of the firestore database.")
	fs.StringVar(&m.wordBackend, "word-backend", envValue(environmentVariableWordBackend), "Where the dictionary is loaded from: postgres, mongo, or none.")
	fs.StringVar(&m.resultBackend, "result-backend", envValue(environmentVariableResultBackend), "Where game results are stored: postgres, mongo, firestore, or none.")
	fs.StringVar(&m.jwtSecret, "jwt-secret", envValue(environmentVariableJWTSecret), "The secret used to sign session tokens.  A random secret is used if empty.")
	fs.StringVar(&m.jamoWeightsFile, "jamo-weights-file", envValue(environmentVariableJamoWeightsFile), "The json file of Korean jamo frequencies for the tile bag.")
	fs.BoolVar(&m.debugGame, "debug-game", envPresent(environmentVariableDebugGame), "Logs message types in the console when messages are passed between components.")
	return fs
}

// newMainFlags creates a new, populated mainFlags structure.
// Fields are populated from command line arguments.
// If fields are not specified on the command line, environment variable
// values are used before defaulting to other defaults.
func newMainFlags(osArgs []string, osLookupEnvFunc func(string) (string, bool)) mainFlags {
	if len(osArgs) == 0 {
		osArgs = []string{""}
	}
	programArgs := osArgs[1:]
	var m mainFlags
	var portOverride int
	fs := m.newFlagSet(osLookupEnvFunc, &portOverride)
	fs.Parse(programArgs)
	if portOverride != 0 {
		m.httpPort = portOverride
	}
	return m
}
