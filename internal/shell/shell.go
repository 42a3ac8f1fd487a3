// Package shell detects the user's shell and produces the hook snippet
// that forwards completed commands to ctx log-cmd.
package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Kind identifies a supported shell.
type Kind string

const (
	Zsh  Kind = "zsh"
	Fish Kind = "fish"
	Bash Kind = "bash"
)

// Detect guesses the current shell. Version env vars win, then the
// parent process name on Linux, then $SHELL. Anything unrecognized
// falls back to bash.
func Detect() Kind {
	if os.Getenv("ZSH_VERSION") != "" {
		return Zsh
	}
	if os.Getenv("FISH_VERSION") != "" {
		return Fish
	}

	if runtime.GOOS == "linux" {
		if k, ok := parentShell(); ok {
			return k
		}
	}

	switch {
	case strings.Contains(os.Getenv("SHELL"), "zsh"):
		return Zsh
	case strings.Contains(os.Getenv("SHELL"), "fish"):
		return Fish
	default:
		return Bash
	}
}

// parentShell reads the parent process comm via /proc.
func parentShell() (Kind, bool) {
	stat, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return "", false
	}
	parts := strings.Fields(string(stat))
	if len(parts) < 4 {
		return "", false
	}
	comm, err := os.ReadFile(fmt.Sprintf("/proc/%s/comm", parts[3]))
	if err != nil {
		return "", false
	}
	switch strings.TrimSpace(string(comm)) {
	case "zsh":
		return Zsh, true
	case "fish":
		return Fish, true
	case "bash":
		return Bash, true
	}
	return "", false
}

// RCPath returns the shell's config file that the snippet should be
// appended to.
func RCPath(k Kind, home string) string {
	switch k {
	case Zsh:
		return filepath.Join(home, ".zshrc")
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return filepath.Join(home, ".bashrc")
	}
}

// timeCommand returns the epoch-time command used inside snippets.
// macOS date(1) has no nanosecond format.
func timeCommand() string {
	if runtime.GOOS == "darwin" {
		return "date +%s"
	}
	return "date +%s%N"
}

// Snippet returns the hook text for the given shell. The hook records
// the command line, working directory, exit status, and duration, and
// skips the logger's own invocations before even calling it.
func Snippet(k Kind) string {
	tc := timeCommand()
	switch k {
	case Zsh:
		return fmt.Sprintf(zshSnippet, tc, tc)
	case Fish:
		return fmt.Sprintf(fishSnippet, tc, tc)
	default:
		return fmt.Sprintf(bashSnippet, tc, tc)
	}
}

const zshSnippet = `function ctx_preexec() {
    export CTX_CMD_START_TIME=$(%s)
    export CTX_CMD_TO_LOG="$1"
}
function ctx_precmd() {
    local exit_code=$?
    if [[ -n "$CTX_CMD_START_TIME" && -n "$CTX_CMD_TO_LOG" ]]; then
        local end_time=$(%s)
        local duration_ns=$((end_time - CTX_CMD_START_TIME))
        local duration_s=$(awk "BEGIN {print $duration_ns/1000000000}")
        if [[ ! "$CTX_CMD_TO_LOG" =~ ^ctx($|[[:space:]]) ]]; then
            ctx log-cmd "$CTX_CMD_TO_LOG" "$PWD" "$exit_code" "$duration_s"
        fi
        unset CTX_CMD_START_TIME
        unset CTX_CMD_TO_LOG
    fi
}
autoload -Uz add-zsh-hook
add-zsh-hook preexec ctx_preexec
add-zsh-hook precmd ctx_precmd
`

const fishSnippet = `function ctx_preexec --on-event fish_preexec
    set -g CTX_CMD_START_TIME (%s)
    set -g CTX_CMD_TO_LOG $argv[1]
end

function ctx_precmd --on-event fish_prompt
    set exit_code $status
    if test -n "$CTX_CMD_START_TIME" -a -n "$CTX_CMD_TO_LOG"
        set end_time (%s)
        set duration_ns (math $end_time - $CTX_CMD_START_TIME)
        set duration_s (math --scale 2 $duration_ns / 1000000000)
        if not string match -rq '^ctx($|\s)' -- $CTX_CMD_TO_LOG
            ctx log-cmd "$CTX_CMD_TO_LOG" "$PWD" "$exit_code" "$duration_s"
        end
        set -e CTX_CMD_START_TIME
        set -e CTX_CMD_TO_LOG
    end
end
`

const bashSnippet = `[[ -f ~/.bash-preexec.sh ]] && source ~/.bash-preexec.sh

function ctx_preexec() {
    export CTX_CMD_START_TIME=$(%s)
    export CTX_CMD_TO_LOG="$1"
}
function ctx_precmd() {
    local exit_code=$?
    if [ -n "$CTX_CMD_START_TIME" ] && [ -n "$CTX_CMD_TO_LOG" ]; then
        local end_time=$(%s)
        local duration_ns=$((end_time - CTX_CMD_START_TIME))
        local duration_s=$(awk "BEGIN {print $duration_ns/1000000000}")
        if [[ ! "$CTX_CMD_TO_LOG" =~ ^ctx($|[[:space:]]) ]]; then
            ctx log-cmd "$CTX_CMD_TO_LOG" "$PWD" "$exit_code" "$duration_s"
        fi
        unset CTX_CMD_START_TIME
        unset CTX_CMD_TO_LOG
    fi
}
preexec_functions+=(ctx_preexec)
precmd_functions+=(ctx_precmd)
`
