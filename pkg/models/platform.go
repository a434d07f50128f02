package models

import "strings"

// Platform is the upstream identifier of the network a gamertag belongs to.
type Platform string

const (
	PlatformBattle     Platform = "battle"
	PlatformPSN        Platform = "psn"
	PlatformXBL        Platform = "xbl"
	PlatformSteam      Platform = "steam"
	PlatformActivision Platform = "uno"
	PlatformActiID     Platform = "acti"
)

var platformAliases = map[string]Platform{
	"battle":      PlatformBattle,
	"battlenet":   PlatformBattle,
	"bnet":        PlatformBattle,
	"pc":          PlatformBattle,
	"psn":         PlatformPSN,
	"playstation": PlatformPSN,
	"xbl":         PlatformXBL,
	"xbox":        PlatformXBL,
	"steam":       PlatformSteam,
	"uno":         PlatformActivision,
	"activision":  PlatformActivision,
	"acti":        PlatformActiID,
}

// ParsePlatform maps common aliases onto upstream ids. Unknown values are
// returned as-is so the upstream can reject them.
func ParsePlatform(s string) Platform {
	key := strings.ToLower(strings.TrimSpace(s))
	if p, ok := platformAliases[key]; ok {
		return p
	}
	return Platform(key)
}

func (p Platform) String() string {
	return string(p)
}
