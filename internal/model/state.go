package model

// EntityState is the life-cycle state of a character.
// Heroes (the player avatar) and non-heroes (enemies, allies) use separate state sets.
type EntityState int32

const (
	// AvatarStance - hero is standing idle
	AvatarStance EntityState = iota
	// AvatarRun - hero is moving
	AvatarRun
	// AvatarBlock - hero is holding a block
	AvatarBlock
	// AvatarHit - hero is playing a hit reaction
	AvatarHit
	// AvatarDead - hero is dead
	AvatarDead
	// AvatarPower - hero is using a power
	AvatarPower

	// EnemyStance - non-hero is standing idle
	EnemyStance
	// EnemyMove - non-hero is moving
	EnemyMove
	// EnemyPower - non-hero is casting a power (see StatBlock.ActivatedPower)
	EnemyPower
	// EnemySpawn - non-hero is playing its spawn animation
	EnemySpawn
	// EnemyBlock - non-hero is holding a block
	EnemyBlock
	// EnemyHit - non-hero is playing a hit reaction
	EnemyHit
	// EnemyDead - non-hero is dead
	EnemyDead
	// EnemyCritDead - non-hero was killed by a critical hit
	EnemyCritDead
)

// String returns human-readable state name
func (s EntityState) String() string {
	switch s {
	case AvatarStance:
		return "AVATAR_STANCE"
	case AvatarRun:
		return "AVATAR_RUN"
	case AvatarBlock:
		return "AVATAR_BLOCK"
	case AvatarHit:
		return "AVATAR_HIT"
	case AvatarDead:
		return "AVATAR_DEAD"
	case AvatarPower:
		return "AVATAR_POWER"
	case EnemyStance:
		return "ENEMY_STANCE"
	case EnemyMove:
		return "ENEMY_MOVE"
	case EnemyPower:
		return "ENEMY_POWER"
	case EnemySpawn:
		return "ENEMY_SPAWN"
	case EnemyBlock:
		return "ENEMY_BLOCK"
	case EnemyHit:
		return "ENEMY_HIT"
	case EnemyDead:
		return "ENEMY_DEAD"
	case EnemyCritDead:
		return "ENEMY_CRITDEAD"
	default:
		return "UNKNOWN"
	}
}

// IsDead reports whether s is one of the dead states.
func (s EntityState) IsDead() bool {
	return s == AvatarDead || s == EnemyDead || s == EnemyCritDead
}

// SourceType identifies which side created a hazard.
type SourceType int32

const (
	SourceHero SourceType = iota
	SourceAlly
	SourceEnemy
)

// String returns human-readable source name
func (s SourceType) String() string {
	switch s {
	case SourceHero:
		return "hero"
	case SourceAlly:
		return "ally"
	case SourceEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// MovementType is the movement class of a character.
// Hazards declare which classes they are able to hit.
type MovementType int32

const (
	MovementNormal MovementType = iota
	MovementFlying
	MovementIntangible
)

// String returns human-readable movement name
func (m MovementType) String() string {
	switch m {
	case MovementNormal:
		return "normal"
	case MovementFlying:
		return "flying"
	case MovementIntangible:
		return "intangible"
	default:
		return "unknown"
	}
}

// ParseMovementType converts a config name into a MovementType.
// Unknown names map to MovementNormal.
func ParseMovementType(name string) MovementType {
	switch name {
	case "flying":
		return MovementFlying
	case "intangible":
		return MovementIntangible
	default:
		return MovementNormal
	}
}

// SoundKind selects one of the per-entity sound lists.
type SoundKind int32

const (
	SoundHit SoundKind = iota
	SoundDie
	SoundCritDie
	SoundBlock
)

// String returns the channel prefix used for the sound kind.
func (k SoundKind) String() string {
	switch k {
	case SoundHit:
		return "hit"
	case SoundDie:
		return "die"
	case SoundCritDie:
		return "critdie"
	case SoundBlock:
		return "block"
	default:
		return "unknown"
	}
}
