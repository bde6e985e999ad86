package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "memscope.cfg.json"

// TargetConfig names the process, module and window to attach to.
type TargetConfig struct {
	Process      string   `json:"process" mapstructure:"process"`
	Module       string   `json:"module" mapstructure:"module"`
	WindowClass  string   `json:"windowClass" mapstructure:"windowClass"`
	WindowTitles []string `json:"windowTitles" mapstructure:"windowTitles"`
}

// OffsetsConfig selects the offset profile. An empty Profile means builtin.
type OffsetsConfig struct {
	Profile string `json:"profile" mapstructure:"profile"`
}

// LayoutConfig holds the entity list geometry.
type LayoutConfig struct {
	ChunkMask     uint32
	ChunkShift    uint
	SlotMask      uint32
	PointerStride uint64
	ListHeader    uint64
	MaxSlots      int
}

type ProjectionConfig struct {
	NearClip float32
	Mapping  string
}

type SnapshotConfig struct {
	NameMaxLength int
	FallbackName  string
	MinHealth     int32
	MaxHealth     int32
}

// LoopConfig holds tick loop settings. Mode is "overlay" or "headless".
type LoopConfig struct {
	Mode        string
	Pacing      time.Duration
	StatusEvery int
}

// OverlayConfig holds overlay window settings. Width and Height are used
// when no target window can be tracked.
type OverlayConfig struct {
	Width       int
	Height      int
	TPS         int
	ExitKey     string
	DebugShapes bool
}

type LogConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout   time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint       string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `json:"insecure" mapstructure:"insecure"`
	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
}

type GraylogConfig struct {
	Enabled bool
	Address string
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./memscope-logs")
	viper.SetDefault("log.maxSizeMB", 10)
	viper.SetDefault("log.maxBackups", 3)
	viper.SetDefault("log.maxAgeDays", 7)
	viper.SetDefault("noPrompt", false)

	viper.SetDefault("target.process", "cs2.exe")
	viper.SetDefault("target.module", "client.dll")
	viper.SetDefault("target.windowClass", "Valve001")
	viper.SetDefault("target.windowTitles", []string{"Counter-Strike 2", "Counter-Strike"})

	viper.SetDefault("offsets.profile", "")

	viper.SetDefault("layout.chunkMask", 0x7FFF)
	viper.SetDefault("layout.chunkShift", 9)
	viper.SetDefault("layout.slotMask", 0x1FF)
	viper.SetDefault("layout.pointerStride", 8)
	viper.SetDefault("layout.listHeader", 16)
	viper.SetDefault("layout.maxSlots", 64)

	viper.SetDefault("projection.nearClip", 0.1)
	viper.SetDefault("projection.mapping", "legacy")

	viper.SetDefault("snapshot.nameMaxLength", 32)
	viper.SetDefault("snapshot.fallbackName", "Player")
	viper.SetDefault("snapshot.minHealth", 1)
	viper.SetDefault("snapshot.maxHealth", 100)

	viper.SetDefault("loop.mode", "overlay")
	viper.SetDefault("loop.pacing", "5ms")
	viper.SetDefault("loop.statusEvery", 100)

	viper.SetDefault("overlay.width", 1920)
	viper.SetDefault("overlay.height", 1080)
	viper.SetDefault("overlay.tps", 120)
	viper.SetDefault("overlay.exitKey", "End")
	viper.SetDefault("overlay.debugShapes", false)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "memscope")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", false)
	viper.SetDefault("otel.metricInterval", "10s")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")
}

// Load sets default values and reads the JSON config file from configDir.
// Defaults stay in effect when the file cannot be read, so callers may log
// the error and carry on.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// NewFlagSet defines the command-line flags. Parse it, then BindFlags.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config-dir", ".", "directory containing "+FileName)
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("profile", "", "offset profile file (JSON, YAML or TOML); empty uses the builtin table")
	fs.String("mode", "overlay", "run mode: overlay or headless")
	fs.Bool("no-prompt", false, "exit on startup failure without waiting for Enter")
	return fs
}

var flagKeys = map[string]string{
	"log-level": "logLevel",
	"profile":   "offsets.profile",
	"mode":      "loop.mode",
	"no-prompt": "noPrompt",
}

// BindFlags binds parsed flags over file and default values. Only flags the
// user actually set take precedence.
func BindFlags(fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetTargetConfig() TargetConfig {
	return TargetConfig{
		Process:      viper.GetString("target.process"),
		Module:       viper.GetString("target.module"),
		WindowClass:  viper.GetString("target.windowClass"),
		WindowTitles: viper.GetStringSlice("target.windowTitles"),
	}
}

func GetOffsetsConfig() OffsetsConfig {
	return OffsetsConfig{
		Profile: viper.GetString("offsets.profile"),
	}
}

func GetLayoutConfig() LayoutConfig {
	return LayoutConfig{
		ChunkMask:     viper.GetUint32("layout.chunkMask"),
		ChunkShift:    viper.GetUint("layout.chunkShift"),
		SlotMask:      viper.GetUint32("layout.slotMask"),
		PointerStride: viper.GetUint64("layout.pointerStride"),
		ListHeader:    viper.GetUint64("layout.listHeader"),
		MaxSlots:      viper.GetInt("layout.maxSlots"),
	}
}

func GetProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		NearClip: float32(viper.GetFloat64("projection.nearClip")),
		Mapping:  viper.GetString("projection.mapping"),
	}
}

func GetSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		NameMaxLength: viper.GetInt("snapshot.nameMaxLength"),
		FallbackName:  viper.GetString("snapshot.fallbackName"),
		MinHealth:     viper.GetInt32("snapshot.minHealth"),
		MaxHealth:     viper.GetInt32("snapshot.maxHealth"),
	}
}

func GetLoopConfig() LoopConfig {
	return LoopConfig{
		Mode:        viper.GetString("loop.mode"),
		Pacing:      viper.GetDuration("loop.pacing"),
		StatusEvery: viper.GetInt("loop.statusEvery"),
	}
}

func GetOverlayConfig() OverlayConfig {
	return OverlayConfig{
		Width:       viper.GetInt("overlay.width"),
		Height:      viper.GetInt("overlay.height"),
		TPS:         viper.GetInt("overlay.tps"),
		ExitKey:     viper.GetString("overlay.exitKey"),
		DebugShapes: viper.GetBool("overlay.debugShapes"),
	}
}

func GetLogConfig() LogConfig {
	return LogConfig{
		Level:      viper.GetString("logLevel"),
		Dir:        viper.GetString("logsDir"),
		MaxSizeMB:  viper.GetInt("log.maxSizeMB"),
		MaxBackups: viper.GetInt("log.maxBackups"),
		MaxAgeDays: viper.GetInt("log.maxAgeDays"),
	}
}

// GetOTelConfig returns the OTel configuration
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		BatchTimeout:   viper.GetDuration("otel.batchTimeout"),
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
		MetricInterval: viper.GetDuration("otel.metricInterval"),
	}
}

func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}
