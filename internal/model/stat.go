package model

// Stat indexes the numeric attributes of a StatBlock.
type Stat int

const (
	StatHPMax Stat = iota
	StatMPMax
	StatDmgMin
	StatDmgMax
	StatAccuracy
	StatAvoidance
	StatAbsMin
	StatAbsMax
	StatCrit
	StatPoise
	StatReflect
	StatReturnDamage
	StatHPSteal
	StatMPSteal

	StatCount
)

var statNames = [StatCount]string{
	StatHPMax:        "hp",
	StatMPMax:        "mp",
	StatDmgMin:       "dmg_min",
	StatDmgMax:       "dmg_max",
	StatAccuracy:     "accuracy",
	StatAvoidance:    "avoidance",
	StatAbsMin:       "absorb_min",
	StatAbsMax:       "absorb_max",
	StatCrit:         "crit",
	StatPoise:        "poise",
	StatReflect:      "reflect_chance",
	StatReturnDamage: "return_damage",
	StatHPSteal:      "hp_steal",
	StatMPSteal:      "mp_steal",
}

// String returns the config key of the stat.
func (s Stat) String() string {
	if s < 0 || s >= StatCount {
		return "unknown"
	}
	return statNames[s]
}

// ParseStat looks up a stat by its config key.
func ParseStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return 0, false
}
