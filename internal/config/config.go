package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the settings read from the environment at startup.
type Config struct {
	DataDir       string
	Addr          string
	LogTimestamps bool
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	dataDir := getEnv("MOVIE_DATA_DIR", "")
	if dataDir == "" {
		dataDir = resolveDataDir([]string{"data", "podatki"}, "data")
	}

	addr := getEnv("PORT", "8080")
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}

	timestamps := true
	if v := getEnv("LOG_TIMESTAMPS", ""); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.New("LOG_TIMESTAMPS: " + err.Error())
		}
		timestamps = parsed
	}

	return Config{
		DataDir:       dataDir,
		Addr:          addr,
		LogTimestamps: timestamps,
	}, nil
}

func resolveDataDir(candidates []string, fallback string) string {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return candidate
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
