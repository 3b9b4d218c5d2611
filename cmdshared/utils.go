package cmdshared

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
	"github.com/packwiz/clientpack/core"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// TitleFromName turns a directory name or slug into a space-separated proper name, e.g. survival-island -> Survival Island
func TitleFromName(name string) string {
	spaced := strings.Join(camelcase.Split(name), " ")
	spaced = strings.ReplaceAll(strings.ReplaceAll(spaced, " - ", " "), " _ ", " ")
	return titlecase.Title(strings.Join(strings.Fields(spaced), " "))
}

// BindFlags binds every flag in flags to the viper key prefix+name
func BindFlags(prefix string, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(prefix+f.Name, f)
	})
}

type kindError interface {
	Kind() string
}

// ErrorLine formats an error as a single diagnostic line, naming its kind when it has one
func ErrorLine(err error) string {
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	var k kindError
	if errors.As(err, &k) {
		return fmt.Sprintf("Error (%s): %s", k.Kind(), msg)
	}
	return "Error: " + msg
}

// ExitWithError prints the error as a single line and exits with a non-zero status
func ExitWithError(err error) {
	fmt.Fprintln(os.Stderr, ErrorLine(err))
	os.Exit(1)
}

// LoadPins loads the configured pin file
func LoadPins() (core.PinFile, error) {
	path := viper.GetString("pins-file")
	pins, err := core.LoadPinFile(path, viper.GetString("env-key"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.PinFile{}, &core.ConfigError{Field: "pins-file", Reason: path + " not found, run 'clientpack init' to create one"}
		}
		return core.PinFile{}, err
	}
	return pins, nil
}
