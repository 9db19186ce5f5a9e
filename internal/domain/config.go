package domain

// Destination strategy names, selected once per deployment.
const (
	StrategyDirect = "direct"
	StrategyShared = "shared"
	StrategyToken  = "token"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	CORS         CORSConfig         `mapstructure:"cors"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	Strategy    string `mapstructure:"strategy"`     // direct, shared or token
	CacheDir    string `mapstructure:"cache_dir"`    // shared strategy artifact directory
	TempDir     string `mapstructure:"temp_dir"`     // token strategy scratch root, "" = system default
	AudioFormat string `mapstructure:"audio_format"` // target audio extension
	YTDLPBinary string `mapstructure:"ytdlp_binary"`
	CookieFile  string `mapstructure:"cookie_file"`
	TokenLimit  int    `mapstructure:"token_limit"` // max in-memory artifacts under the token strategy
}

// HistoryConfig contains fetch-history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Sound   bool   `mapstructure:"sound"`
	Method  string `mapstructure:"method"` // osascript, notify-send, etc.
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// CORSConfig lists browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 6172,
		},
		Download: DownloadConfig{
			Strategy:    StrategyDirect,
			CacheDir:    "$HOME/Downloads/audio-fetch/cache",
			TempDir:     "",
			AudioFormat: "mp3",
			YTDLPBinary: "yt-dlp",
			CookieFile:  "$HOME/Downloads/audio-fetch/cookies/default.cookie",
			TokenLimit:  128,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/Downloads/audio-fetch/config/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Sound:   false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
}
