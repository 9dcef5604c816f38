package models

// Options are the JavaCC grammar options passed to every compiler invocation.
type Options struct {
	LookAhead            int  `mapstructure:"lookahead" yaml:"lookahead"`
	ChoiceAmbiguityCheck int  `mapstructure:"choice_ambiguity_check" yaml:"choice_ambiguity_check"`
	OtherAmbiguityCheck  int  `mapstructure:"other_ambiguity_check" yaml:"other_ambiguity_check"`
	IsStatic             bool `mapstructure:"is_static" yaml:"is_static"`
	DebugParser          bool `mapstructure:"debug_parser" yaml:"debug_parser"`
	DebugLookAhead       bool `mapstructure:"debug_lookahead" yaml:"debug_lookahead"`
	DebugTokenManager    bool `mapstructure:"debug_token_manager" yaml:"debug_token_manager"`
	OptimizeTokenManager bool `mapstructure:"optimize_token_manager" yaml:"optimize_token_manager"`
	ErrorReporting       bool `mapstructure:"error_reporting" yaml:"error_reporting"`
	JavaUnicodeEscape    bool `mapstructure:"java_unicode_escape" yaml:"java_unicode_escape"`
	UnicodeInput         bool `mapstructure:"unicode_input" yaml:"unicode_input"`
	IgnoreCase           bool `mapstructure:"ignore_case" yaml:"ignore_case"`
	CommonTokenAction    bool `mapstructure:"common_token_action" yaml:"common_token_action"`
	UserTokenManager     bool `mapstructure:"user_token_manager" yaml:"user_token_manager"`
	UserCharStream       bool `mapstructure:"user_char_stream" yaml:"user_char_stream"`
	BuildParser          bool `mapstructure:"build_parser" yaml:"build_parser"`
	BuildTokenManager    bool `mapstructure:"build_token_manager" yaml:"build_token_manager"`
	SanityCheck          bool `mapstructure:"sanity_check" yaml:"sanity_check"`
	ForceLaCheck         bool `mapstructure:"force_la_check" yaml:"force_la_check"`
	CacheTokens          bool `mapstructure:"cache_tokens" yaml:"cache_tokens"`
	KeepLineColumn       bool `mapstructure:"keep_line_column" yaml:"keep_line_column"`
}

// DefaultOptions mirror the JavaCC defaults used by the build.
func DefaultOptions() Options {
	return Options{
		LookAhead:            1,
		ChoiceAmbiguityCheck: 2,
		OtherAmbiguityCheck:  1,
		IsStatic:             true,
		OptimizeTokenManager: true,
		ErrorReporting:       true,
		BuildParser:          true,
		BuildTokenManager:    true,
		SanityCheck:          true,
		KeepLineColumn:       true,
	}
}

// Config is everything the driver needs for one run. It is built once and
// passed by value.
type Config struct {
	SourceDirectory    string
	OutputDirectory    string
	TimestampDirectory string
	// StaleMillis is how much newer than its marker a grammar may be and
	// still count as up to date.
	StaleMillis int
	Excludes    []string
	Options     Options
}
