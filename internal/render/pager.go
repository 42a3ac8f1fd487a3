package render

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Page pipes content through the given pager command. The pager's
// stdout and stderr are inherited from the current process.
func Page(pager, content string) error {
	parts := strings.Fields(pager)
	if len(parts) == 0 {
		return fmt.Errorf("empty pager command")
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("pager stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start pager %q: %w", pager, err)
	}

	if _, err := io.WriteString(stdin, content); err != nil {
		stdin.Close()
		cmd.Wait()
		return fmt.Errorf("write to pager: %w", err)
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("pager %q: %w", pager, err)
	}

	return nil
}
