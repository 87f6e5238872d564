package config

// ApplyPreset adjusts physics for a named difficulty preset. The preset
// scales the loaded values rather than replacing them, so custom config
// files keep their proportions.
func ApplyPreset(cfg *StackerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.Gravity = scaleRate(cfg.Physics.Gravity, 60)
		cfg.Physics.LockDelayTicks = cfg.Physics.LockDelayTicks * 3 / 2
		cfg.Physics.MaxLockResets += 5
	case DifficultyNormal:
		// loaded values as-is
	case DifficultyHard:
		cfg.Physics.Gravity = scaleRate(cfg.Physics.Gravity, 300)
		cfg.Physics.LockDelayTicks = cfg.Physics.LockDelayTicks * 2 / 3
		if cfg.Physics.MaxLockResets > 8 {
			cfg.Physics.MaxLockResets = 8
		}
	case DifficultyFixed:
		// drill pacing: slow constant gravity, generous lock handling
		cfg.Physics.Gravity = 5
		cfg.Physics.LockDelayTicks = 60
		cfg.Physics.MaxLockResets = 30
	}
	if cfg.Physics.LockDelayTicks < 1 {
		cfg.Physics.LockDelayTicks = 1
	}
}

// scaleRate multiplies a fixed-point rate by percent/100, never dropping
// below one unit per tick.
func scaleRate(rate, percent int) int {
	scaled := rate * percent / 100
	if scaled < 1 {
		return 1
	}
	return scaled
}
