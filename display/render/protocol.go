// Package render turns rasterised chart frames into terminal output. It
// supports the Kitty Graphics Protocol (Ghostty, Kitty, WezTerm), iTerm2
// inline images, and a Unicode half-block fallback that works in any
// 24-bit colour terminal.
package render

import (
	"fmt"
	"os"
	"strings"
)

// ImageProtocol identifies how a frame is sent to the terminal.
type ImageProtocol int

const (
	// ProtocolKitty uses the Kitty Graphics Protocol (supported by Ghostty, Kitty, WezTerm).
	ProtocolKitty ImageProtocol = iota
	// ProtocolITerm2 uses iTerm2 native inline images protocol.
	ProtocolITerm2
	// ProtocolUnicode uses half-block unicode characters with ANSI 24-bit color.
	ProtocolUnicode
	// ProtocolNone indicates no image rendering support; auto-detect when requested.
	ProtocolNone
)

// String returns the human-readable name of the protocol.
func (p ImageProtocol) String() string {
	switch p {
	case ProtocolKitty:
		return "kitty"
	case ProtocolITerm2:
		return "iterm2"
	case ProtocolUnicode:
		return "unicode"
	case ProtocolNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseProtocol maps a configuration name to a protocol. "auto" and the empty
// string select ProtocolNone, which callers treat as "detect".
func ParseProtocol(name string) (ImageProtocol, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto", "none":
		return ProtocolNone, nil
	case "kitty":
		return ProtocolKitty, nil
	case "iterm2":
		return ProtocolITerm2, nil
	case "unicode", "halfblock":
		return ProtocolUnicode, nil
	default:
		return ProtocolNone, fmt.Errorf("render: unknown protocol %q", name)
	}
}

// DetectProtocol inspects environment variables to determine which image
// protocol the current terminal supports.
//
// Detection priority:
//  1. TERM_PROGRAM for known terminal emulators
//  2. TERM=xterm-kitty for Kitty terminal
//  3. KITTY_WINDOW_ID environment variable
//  4. iTerm2 specific environment variables
//  5. WEZTERM_EXECUTABLE
//  6. Unicode half-blocks as universal fallback
func DetectProtocol() ImageProtocol {
	switch strings.ToLower(os.Getenv("TERM_PROGRAM")) {
	case "ghostty", "kitty", "wezterm":
		return ProtocolKitty
	case "iterm.app":
		return ProtocolITerm2
	case "apple_terminal":
		return ProtocolUnicode
	}

	if os.Getenv("TERM") == "xterm-kitty" {
		return ProtocolKitty
	}

	// Set even if TERM_PROGRAM is overridden by a multiplexer.
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return ProtocolKitty
	}

	if os.Getenv("ITERM_SESSION_ID") != "" || os.Getenv("LC_TERMINAL") == "iTerm2" {
		return ProtocolITerm2
	}

	if os.Getenv("WEZTERM_EXECUTABLE") != "" {
		return ProtocolKitty
	}

	return ProtocolUnicode
}

// IsSSHSession returns true if we're running inside an SSH session.
func IsSSHSession() bool {
	return os.Getenv("SSH_CLIENT") != "" || os.Getenv("SSH_CONNECTION") != "" ||
		os.Getenv("SSH_TTY") != ""
}

// IsTmuxSession returns true if we're running inside tmux.
func IsTmuxSession() bool {
	return os.Getenv("TMUX") != ""
}

// DetectProtocolWithContext performs protocol detection with SSH and tmux
// awareness. Graphics protocols are unreliable over SSH, and tmux only
// passes Kitty sequences through with allow-passthrough enabled, so both
// degrade to half-blocks.
func DetectProtocolWithContext() ImageProtocol {
	protocol := DetectProtocol()

	if IsSSHSession() && protocol != ProtocolUnicode {
		return ProtocolUnicode
	}
	if IsTmuxSession() && protocol == ProtocolKitty {
		return ProtocolUnicode
	}

	return protocol
}

// FormatDiagnostics returns a human-readable description of the rendering
// environment.
func FormatDiagnostics() string {
	cols, rows := TerminalSize()

	var b strings.Builder
	b.WriteString("Render Diagnostics:\n")
	fmt.Fprintf(&b, "  Detected Protocol: %s\n", DetectProtocol())
	fmt.Fprintf(&b, "  Context-Aware: %s\n", DetectProtocolWithContext())
	fmt.Fprintf(&b, "  SSH Session: %v\n", IsSSHSession())
	fmt.Fprintf(&b, "  Tmux Session: %v\n", IsTmuxSession())
	fmt.Fprintf(&b, "  Terminal Size: %dx%d\n", cols, rows)
	return b.String()
}
