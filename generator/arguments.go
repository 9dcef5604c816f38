package generator

import (
	"strconv"

	"github.com/meysamhadeli/jjgen/generator/models"
)

// BuildArguments translates the options into the JavaCC command line for one
// grammar. The order is fixed; values are not validated.
func BuildArguments(options models.Options, outputDirectory string, grammarPath string) []string {
	args := make([]string, 0, 23)

	addInt := func(name string, value int) {
		args = append(args, "-"+name+"="+strconv.Itoa(value))
	}
	addBool := func(name string, value bool) {
		args = append(args, "-"+name+"="+strconv.FormatBool(value))
	}

	addInt("LOOKAHEAD", options.LookAhead)
	addInt("CHOICE_AMBIGUITY_CHECK", options.ChoiceAmbiguityCheck)
	addInt("OTHER_AMBIGUITY_CHECK", options.OtherAmbiguityCheck)
	addBool("STATIC", options.IsStatic)
	addBool("DEBUG_PARSER", options.DebugParser)
	addBool("DEBUG_LOOKAHEAD", options.DebugLookAhead)
	addBool("DEBUG_TOKEN_MANAGER", options.DebugTokenManager)
	addBool("OPTIMIZE_TOKEN_MANAGER", options.OptimizeTokenManager)
	addBool("ERROR_REPORTING", options.ErrorReporting)
	addBool("JAVA_UNICODE_ESCAPE", options.JavaUnicodeEscape)
	addBool("UNICODE_INPUT", options.UnicodeInput)
	addBool("IGNORE_CASE", options.IgnoreCase)
	addBool("COMMON_TOKEN_ACTION", options.CommonTokenAction)
	addBool("USER_TOKEN_MANAGER", options.UserTokenManager)
	addBool("USER_CHAR_STREAM", options.UserCharStream)
	addBool("BUILD_PARSER", options.BuildParser)
	addBool("BUILD_TOKEN_MANAGER", options.BuildTokenManager)
	addBool("SANITY_CHECK", options.SanityCheck)
	addBool("FORCE_LA_CHECK", options.ForceLaCheck)
	addBool("CACHE_TOKENS", options.CacheTokens)
	addBool("KEEP_LINE_COLUMN", options.KeepLineColumn)

	args = append(args, "-OUTPUT_DIRECTORY:"+outputDirectory)
	args = append(args, grammarPath)

	return args
}
