package config

const (
	defaultDataDir         = "~/.local/share/mixdown"
	defaultLogDir          = "~/.local/share/mixdown/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultSampleRate      = 44100
	defaultBitDepth        = 16
	defaultPixelsPerSecond = 50.0
	defaultZoom            = 1.0
	defaultGridSize        = 1.0
	defaultStepDelayMS     = 150
	defaultRequestTimeout  = 30
	defaultNtfyTimeout     = 10
	defaultIntroAsset      = "Podcast Intro"
	defaultOutroAsset      = "Podcast Outro"
	defaultJingleAsset     = "Jingle Sting"
	defaultBackgroundAsset = "Background Bed"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Timeline: Timeline{
			SampleRate:      defaultSampleRate,
			BitDepth:        defaultBitDepth,
			PixelsPerSecond: defaultPixelsPerSecond,
			Zoom:            defaultZoom,
			GridSize:        defaultGridSize,
			SnapToGrid:      true,
		},
		Production: Production{
			StepDelayMS:     defaultStepDelayMS,
			IntroAsset:      defaultIntroAsset,
			OutroAsset:      defaultOutroAsset,
			JingleAsset:     defaultJingleAsset,
			BackgroundAsset: defaultBackgroundAsset,
		},
		Services: Services{
			RequestTimeout: defaultRequestTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
