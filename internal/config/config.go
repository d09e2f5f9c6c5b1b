// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Group описывает одну отслеживаемую группу: её chat ID,
// язык ответов и отображаемое имя.
type Group struct {
	ChatID   int64
	Language string // "ru" или "zh"
	Name     string
}

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	// Список отслеживаемых групп в формате "chatID:язык:имя;chatID:язык:имя".
	// Пример: GROUPS="-1002774266933:ru:Русская группа (Shanghai);-1002468561827:zh:上海中文群组"
	GroupsRaw string  `envconfig:"GROUPS" required:"true"`
	Groups    []Group `envconfig:"-"` // заполним вручную
	// Если true — бот ведёт баланс в любой группе, куда его добавили
	// (язык по умолчанию zh). Если false — только группы из GROUPS.
	TrackUnknownGroups bool `envconfig:"TRACK_UNKNOWN_GROUPS" default:"false"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost         string        `envconfig:"DB_HOST" default:"postgres"`
	DBPort         int           `envconfig:"DB_PORT" default:"5432"`
	DBUser         string        `envconfig:"DB_USER" default:"botuser"`
	DBPassword     string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName         string        `envconfig:"DB_NAME" default:"balance_bot"`
	DBSSLMode      string        `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns     int32         `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns     int32         `envconfig:"DB_MIN_CONNS" default:"5"`
	DBQueryTimeout time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"5s"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Asia/Shanghai"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Intake (веб-анкеты) ---
	// Чат, куда пересылаются анкеты с сайта. 0 — приём анкет выключен.
	IntakeChatID    int64  `envconfig:"INTAKE_CHAT_ID" default:"0"`
	HTTPPort        int    `envconfig:"HTTP_PORT" default:"5000"`
	UploadDir       string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadSizeMB int64  `envconfig:"MAX_UPLOAD_SIZE_MB" default:"100"`

	// --- Rate Limiting (HTTP) ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Jobs ---
	// Cron-расписание ежедневной сводки балансов. Пусто — сводка выключена.
	SummaryCron string `envconfig:"SUMMARY_CRON" default:""`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if len(c.Groups) == 0 {
		return fmt.Errorf("GROUPS не задан или пуст")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.DBQueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT должен быть > 0")
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	groups, err := ParseGroups(cfg.GroupsRaw)
	if err != nil {
		return nil, fmt.Errorf("GROUPS parse: %w", err)
	}
	cfg.Groups = groups

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseGroups разбирает строку вида "chatID:язык:имя;chatID:язык:имя".
// Имя может быть пустым — тогда подставится "Group {chatID}".
func ParseGroups(s string) ([]Group, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	entries := strings.Split(s, ";")
	out := make([]Group, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("ожидается chatID:язык[:имя], получено %q", entry)
		}

		chatID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad chat id %q: %w", parts[0], err)
		}

		lang := strings.ToLower(strings.TrimSpace(parts[1]))
		if lang != "ru" && lang != "zh" {
			return nil, fmt.Errorf("неизвестный язык %q (поддерживаются ru, zh)", parts[1])
		}

		name := ""
		if len(parts) == 3 {
			name = strings.TrimSpace(parts[2])
		}
		if name == "" {
			name = fmt.Sprintf("Group %d", chatID)
		}

		out = append(out, Group{ChatID: chatID, Language: lang, Name: name})
	}
	return out, nil
}
