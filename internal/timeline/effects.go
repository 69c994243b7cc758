package timeline

// EffectType enumerates the effect kinds the external renderer understands.
type EffectType string

const (
	EffectEQ          EffectType = "eq"
	EffectReverb      EffectType = "reverb"
	EffectDelay       EffectType = "delay"
	EffectCompression EffectType = "compression"
	EffectLimiter     EffectType = "limiter"
	EffectGate        EffectType = "gate"
)

// Effect is an opaque parameter bag attached to a track. The core only
// assigns default parameter sets and toggles Enabled; rendering is the
// external renderer's problem.
type Effect struct {
	Type    EffectType         `json:"type"`
	Enabled bool               `json:"enabled"`
	Params  map[string]float64 `json:"params"`
}

// NewEffect builds an effect of the given type with its default parameters.
func NewEffect(kind EffectType) Effect {
	return Effect{
		Type:    kind,
		Enabled: true,
		Params:  defaultEffectParams(kind),
	}
}

func defaultEffectParams(kind EffectType) map[string]float64 {
	switch kind {
	case EffectEQ:
		return map[string]float64{"low_gain": 0, "mid_gain": 0, "high_gain": 0}
	case EffectReverb:
		return map[string]float64{"room_size": 0.3, "damping": 0.5, "wet": 0.2}
	case EffectDelay:
		return map[string]float64{"time_ms": 250, "feedback": 0.3, "mix": 0.25}
	case EffectCompression:
		return map[string]float64{"threshold_db": -18, "ratio": 3, "attack_ms": 10, "release_ms": 120}
	case EffectLimiter:
		return map[string]float64{"ceiling_db": -1}
	case EffectGate:
		return map[string]float64{"threshold_db": -45, "release_ms": 200}
	default:
		return map[string]float64{}
	}
}
