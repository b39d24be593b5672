package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables

	"github.com/joho/godotenv" // godotenv loads a .env file into the environment when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The graph database credentials are read once at
// startup; nothing is re-read while the process runs.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on (defaults to 3000)
	Neo4jURI      string // bolt/neo4j URI of the graph database
	Neo4jUser     string // graph database username
	Neo4jPassword string // graph database password (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when it
// exists.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // best effort; absence of a .env file is not an error

	return Config{
		Env:           getenv("APP_ENV", "dev"),    // environment (dev/test/prod)
		Port:          getenv("APP_PORT", "3000"),  // port to bind the HTTP server
		Neo4jURI:      must("NEO4J_URI"),           // graph database URI
		Neo4jUser:     must("NEO4J_USER"),          // graph database user
		Neo4jPassword: os.Getenv("NEO4J_PASSWORD"), // graph database password (empty allowed)
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv retrieves an optional environment variable, falling back to the
// provided default when it is unset or empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
