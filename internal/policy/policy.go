// Package policy renders the owned hosts block for the two steering
// policies: Gatekeep, which null-routes every region outside the selection,
// and Universal Redirect, which points every region's hostnames at one
// region's addresses.
package policy

import (
	"fmt"
	"strings"
)

// Mode selects the steering policy.
type Mode string

const (
	ModeGatekeep          Mode = "gatekeep"
	ModeUniversalRedirect Mode = "universal-redirect"
)

// ParseMode accepts "gatekeep", "redirect" or "universal-redirect".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gatekeep", "":
		return ModeGatekeep, nil
	case "redirect", "universal-redirect", "universal":
		return ModeUniversalRedirect, nil
	}
	return "", fmt.Errorf("unknown mode %q (want gatekeep or redirect)", s)
}

// BlockMode filters which endpoint kinds Gatekeep writes entries for.
type BlockMode int

const (
	BlockBoth BlockMode = iota
	BlockPing
	BlockService
)

func (b BlockMode) String() string {
	switch b {
	case BlockPing:
		return "ping"
	case BlockService:
		return "service"
	default:
		return "both"
	}
}

// ParseBlockMode accepts "both", "ping" or "service".
func ParseBlockMode(s string) (BlockMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "both", "":
		return BlockBoth, nil
	case "ping", "only-ping":
		return BlockPing, nil
	case "service", "only-service":
		return BlockService, nil
	}
	return BlockBoth, fmt.Errorf("unknown block mode %q (want both, ping or service)", s)
}

// includes reports whether a hostname of the given kind gets an entry.
func (b BlockMode) includes(ping bool) bool {
	switch b {
	case BlockPing:
		return ping
	case BlockService:
		return !ping
	default:
		return true
	}
}

// DefaultSupportURL is the help link written into every block header.
const DefaultSupportURL = "https://discord.gg/gnvtATeVc4"

// Header identifies the tool at the top of the owned block.
type Header struct {
	SupportURL string
}

const (
	headerTitle    = "# Edited by Make Your Choice (DbD Server Selector)"
	headerGatekeep = "# Unselected servers are blocked (Gatekeep Mode); selected servers are commented out."
	headerRedirect = "# Universal Redirect mode: redirect all GameLift endpoints to selected region"
)

func (h Header) write(b *strings.Builder, modeLine string) {
	url := h.SupportURL
	if url == "" {
		url = DefaultSupportURL
	}
	b.WriteString(headerTitle + "\n")
	b.WriteString(modeLine + "\n")
	fmt.Fprintf(b, "# Need help? Discord: %s\n", url)
	b.WriteString("\n")
}

// DetectMode reports which policy rendered a block, from its header line.
func DetectMode(inner string) (Mode, bool) {
	for _, line := range strings.Split(inner, "\n") {
		switch strings.TrimSpace(line) {
		case headerGatekeep:
			return ModeGatekeep, true
		case headerRedirect:
			return ModeUniversalRedirect, true
		}
	}
	return "", false
}
