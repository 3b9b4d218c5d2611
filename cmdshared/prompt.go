package cmdshared

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// stdin is shared by every prompt, so input buffered while answering one prompt isn't lost to the next
var stdin = bufio.NewReader(os.Stdin)

// PromptYesNo asks a yes/no question, returning def for an empty answer or in non-interactive mode
func PromptYesNo(prompt string, def bool) bool {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		if def {
			fmt.Println("Y (non-interactive mode)")
		} else {
			fmt.Println("N (non-interactive mode)")
		}
		return def
	}
	answer, err := stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		ExitWithError(fmt.Errorf("failed to prompt user: %w", err))
	}

	ansNormal := strings.ToLower(strings.TrimSpace(answer))
	if len(ansNormal) == 0 {
		return def
	}
	return ansNormal[0] == 'y'
}

// ReadValue asks for a value, returning def for an empty answer or in non-interactive mode
func ReadValue(prompt string, def string) string {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		fmt.Printf("%s\n", def)
		return def
	}
	value, err := stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		ExitWithError(fmt.Errorf("failed to read input: %w", err))
	}
	// Trims both CR and LF
	value = strings.TrimSpace(value)
	if len(value) > 0 {
		return value
	}
	return def
}
