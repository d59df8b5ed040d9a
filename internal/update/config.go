package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath               string
	HistoryWindowDays    int
	ShowCompleted        bool
	DesktopNotifications bool
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               "habitd.db",
		HistoryWindowDays:    14,
		ShowCompleted:        false,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("HABITD_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvInt("HABITD_HISTORY_WINDOW_DAYS"); ok && v > 0 {
		cfg.HistoryWindowDays = v
	}
	if v, ok := getEnvBool("HABITD_SHOW_COMPLETED"); ok {
		cfg.ShowCompleted = v
	}
	if v, ok := getEnvBool("HABITD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("HABITD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
