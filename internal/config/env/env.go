package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Candidates returns the .env files consulted for the current ENV, most
// specific first.
func Candidates() []string {
	name := os.Getenv("ENV")
	if name == "" {
		name = "development"
	}

	envFile := fmt.Sprintf(".env.%s", name)
	return []string{
		filepath.Join("internal", "config", "env", envFile),
		envFile,
		".env",
	}
}

// LoadEnv loads the first .env file that exists. Variables already present
// in the process environment are never overwritten. It returns the loaded
// path, or "" when no file was found.
func LoadEnv() string {
	for _, loc := range Candidates() {
		if err := godotenv.Load(loc); err == nil {
			return loc
		}
	}
	return ""
}
