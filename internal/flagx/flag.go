package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns a slice of command-line arguments that only contains
// the allowed flags (and their values) specified in allowedFlags.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -o index.tlf
//  2. Flag and value combined with '=':      --output=index.tlf
//
// Parameters:
//
//	args         — the command-line arguments (usually os.Args[1:])
//	allowedFlags — list of allowed flag names (e.g. []string{"-o", "--output"})
//
// Returns:
//
//	A slice containing the allowed flags and their values (if provided separately).
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" or "-f=value" form: keep the whole argument when allowed.
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// Separate-argument form: the next argument may be this flag's value.
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// FilterFlagArgs is FilterArgs with boolean-flag awareness: flags listed in
// boolFlags never consume the following argument, so positional arguments
// after them are not mistaken for flag values.
func FilterFlagArgs(args []string, valueFlags, boolFlags []string) []string {
	valueSet := make(map[string]struct{}, len(valueFlags))
	for _, f := range valueFlags {
		valueSet[f] = struct{}{}
	}
	boolSet := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		boolSet[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			_, okValue := valueSet[name]
			_, okBool := boolSet[name]
			if okValue || okBool {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := boolSet[arg]; ok {
			// Boolean flags take no separate value; normalize to =true so
			// flag.Parse never swallows a following positional argument.
			filtered = append(filtered, arg+"=true")
			continue
		}

		if _, ok := valueSet[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// Positionals returns the arguments that are neither flags nor flag values.
// Flags listed in boolFlags consume no value; every other flag is assumed to
// consume the following argument unless it uses the "flag=value" form.
func Positionals(args []string, boolFlags []string) []string {
	boolSet := make(map[string]struct{}, len(boolFlags))
	for _, f := range boolFlags {
		boolSet[f] = struct{}{}
	}

	positional := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}
		if strings.Contains(arg, "=") {
			continue
		}
		if _, ok := boolSet[arg]; ok {
			continue
		}
		// Value flag: skip its value if one follows.
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
		}
	}

	return positional
}

// JsonConfigFlags inspects command-line arguments and extracts the config file
// path provided via the -c or -config flags.
//
// Only these flags are parsed; other arguments are ignored. This allows the
// application to safely parse its own flags without interfering with flags
// defined by other packages.
//
// If neither -c nor -config is present, an empty string is returned.
func JsonConfigFlags() string {
	var config string

	// Both dash forms must be listed: FilterArgs matches flag names literally.
	args := FilterArgs(os.Args[1:], []string{"-c", "--c", "-config", "--config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
