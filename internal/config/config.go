package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	// file|sqlite|postgres
	StoreDriver string
	DBDSN       string

	DataFile    string // ledger JSON (file driver)
	TeamsFile   string // registry JSON (file driver)
	ExportDir   string // ranking report artifacts
	CatalogFile string // optional criteria rubric override

	AuthHMACSecret string
	EnableMetrics  bool

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		StoreDriver:    envOr("STORE_DRIVER", "file"),
		DBDSN:          os.Getenv("DB_DSN"),
		DataFile:       envOr("DATA_FILE", "game_tec_data.json"),
		TeamsFile:      envOr("TEAMS_FILE", "teams_data.json"),
		ExportDir:      envOr("EXPORT_DIR", "./exports"),
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		EnableMetrics:  envBool("ENABLE_METRICS", true),
		CORSOrigins:    csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
