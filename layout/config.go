package layout

import "github.com/tsawler/outline/text"

// Config gathers the configuration of every outline stage
type Config struct {
	Normalizer text.NormalizerConfig `mapstructure:"normalizer" yaml:"normalizer"`
	Noise      NoiseConfig           `mapstructure:"noise" yaml:"noise"`
	Heading    HeadingConfig         `mapstructure:"heading" yaml:"heading"`
	Levels     LevelConfig           `mapstructure:"levels" yaml:"levels"`
	Merge      MergeConfig           `mapstructure:"merge" yaml:"merge"`
	Title      TitleConfig           `mapstructure:"title" yaml:"title"`

	// UseBookmarks lets an explicit document outline replace heading
	// inference
	// Default: true
	UseBookmarks bool `mapstructure:"use_bookmarks" yaml:"use_bookmarks"`

	// MinBookmarks is the number of bookmarks a document must exceed for
	// them to be used
	// Default: 2
	MinBookmarks int `mapstructure:"min_bookmarks" yaml:"min_bookmarks"`
}

// DefaultConfig returns the default configuration of every stage
func DefaultConfig() Config {
	return Config{
		Normalizer:   text.DefaultNormalizerConfig(),
		Noise:        DefaultNoiseConfig(),
		Heading:      DefaultHeadingConfig(),
		Levels:       DefaultLevelConfig(),
		Merge:        DefaultMergeConfig(),
		Title:        DefaultTitleConfig(),
		UseBookmarks: true,
		MinBookmarks: 2,
	}
}
