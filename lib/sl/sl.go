package sl

import (
	"fmt"
	"log/slog"
	"strings"
)

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret returns a string with the first 5 characters of the input string
// used to hide sensitive information in logs
func Secret(key, value string) slog.Attr {
	r := "***"
	if len(value) > 5 {
		r = fmt.Sprintf("%s***", value[0:5])
	}
	if value == "" {
		r = "?"
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(r),
	}
}

// Code hides all but the last two digits of a purchase code.
func Code(value string) slog.Attr {
	r := "?"
	if len(value) > 2 {
		r = strings.Repeat("*", len(value)-2) + value[len(value)-2:]
	} else if value != "" {
		r = "**"
	}
	return slog.Attr{
		Key:   "code",
		Value: slog.StringValue(r),
	}
}

func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "mod",
		Value: slog.StringValue(mod),
	}
}
