package ffmpegcli

import "github.com/user/lyrexport/pkg/ports"

// tierParams maps a quality tier to an x264 preset and constant-rate-factor.
// Lower tiers use faster presets and larger CRF values (more compression).
type tierParams struct {
	preset string
	crf    int
}

var tierTable = map[ports.QualityTier]tierParams{
	ports.TierDraft:    {preset: "ultrafast", crf: 32},
	ports.TierStandard: {preset: "fast", crf: 26},
	ports.TierHigh:     {preset: "slow", crf: 21},
	ports.TierUltra:    {preset: "slower", crf: 17},
}

// tierFor returns the encoder parameters for a tier, defaulting to standard.
func tierFor(t ports.QualityTier) tierParams {
	if p, ok := tierTable[t]; ok {
		return p
	}
	return tierTable[ports.TierStandard]
}
