package structures

import "time"

type Server struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `mapstructure:"filePath"`
	SaveInterval time.Duration `mapstructure:"saveInterval"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `mapstructure:"mode"`
	Dir   string `mapstructure:"dir"`
}

// Account identifies the publisher app and the end user every request is made for.
type Account struct {
	AppID     string   `mapstructure:"appId" validate:"required"`
	ExtUserID string   `mapstructure:"extUserId" validate:"required"`
	SecureKey string   `mapstructure:"secureKey"`
	Email     string   `mapstructure:"email"`
	SubID1    string   `mapstructure:"subId1"`
	SubID2    string   `mapstructure:"subId2"`
	ExtraInfo []string `mapstructure:"extraInfo"`
}

type PositionConfig struct {
	Type   string `mapstructure:"type" validate:"required|in:side,corner,screen"`
	Anchor string `mapstructure:"anchor" validate:"required"`
	Size   string `mapstructure:"size"`
}

type Style struct {
	Position        PositionConfig `mapstructure:"position"`
	Text            string         `mapstructure:"text"`
	TextSize        int            `mapstructure:"textSize"`
	TextColor       string         `mapstructure:"textColor" validate:"required"`
	BackgroundColor string         `mapstructure:"backgroundColor" validate:"required"`
	RoundedCorners  bool           `mapstructure:"roundedCorners"`
}

type Endpoints struct {
	SurveyAPI  string `mapstructure:"surveyApi"`
	SurveyList string `mapstructure:"surveyList"`
	Image      string `mapstructure:"image"`
}

type SyncConfig struct {
	PollInterval   time.Duration `mapstructure:"pollInterval"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	PollOnStart    bool          `mapstructure:"pollOnStart"`
	AutoPolling    bool          `mapstructure:"autoPolling"`
}

type ScreenConfig struct {
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	Scale      int     `mapstructure:"scale"`
	SafeTop    float64 `mapstructure:"safeTop"`
	SafeBottom float64 `mapstructure:"safeBottom"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Size    int  `mapstructure:"size"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Account     Account       `mapstructure:"account"`
	Style       Style         `mapstructure:"style"`
	Endpoints   Endpoints     `mapstructure:"endpoints"`
	Sync        SyncConfig    `mapstructure:"sync"`
	Screen      ScreenConfig  `mapstructure:"screen"`
	WebServer   Server        `mapstructure:"webServer"`
	Persistence Persistence   `mapstructure:"persistence"`
	Logger      LoggerConfig  `mapstructure:"logger"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
}
