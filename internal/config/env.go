package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	envOnce sync.Once
	envFile string
)

// LoadEnv loads variables from a .env file in the working directory or its
// parent, once per process. It returns the file that was loaded, or "" when
// none was found or it could not be read. Variables already present in the
// environment are never overridden.
func LoadEnv() string {
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err != nil {
				return
			}
			envFile = candidate
			return
		}
	})
	return envFile
}
