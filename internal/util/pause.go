package util

import (
	"bufio"
	"fmt"
	"os"
)

// WaitForEnter blocks until the user presses Enter. Used after a failure when
// the binary was started by double-click, so the console does not vanish
// before the error can be read.
func WaitForEnter() {
	fmt.Fprint(os.Stderr, "Press Enter to close...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
