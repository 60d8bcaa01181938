package main

import (
	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/dicetable/table"
)

// overrides are optional environment tweaks applied on top of the stock
// tunables; unset variables leave defaults untouched.
type overrides struct {
	GravityY    *float64 `env:"DICETABLE_GRAVITY_Y"`
	TickRate    *float64 `env:"DICETABLE_TICK_RATE"`
	SpeedMin    *float64 `env:"DICETABLE_SPEED_MIN"`
	SpeedMax    *float64 `env:"DICETABLE_SPEED_MAX"`
	AngVelMax   *float64 `env:"DICETABLE_ANGVEL_MAX"`
	RestHeight  *float64 `env:"DICETABLE_REST_HEIGHT"`
	StillFrames *int     `env:"DICETABLE_STILL_FRAMES"`
	Seed        *int64   `env:"DICETABLE_SEED"`
}

// loadTunables returns defaults with environment overrides applied, plus
// the env-provided seed (0 when unset).
func loadTunables() (table.Tunables, int64, error) {
	tun := table.DefaultTunables()

	var o overrides
	if err := env.Parse(&o); err != nil {
		return tun, 0, err
	}

	return applyOverrides(tun, o)
}

func applyOverrides(tun table.Tunables, o overrides) (table.Tunables, int64, error) {
	if o.GravityY != nil {
		tun.Gravity[1] = *o.GravityY
	}
	if o.TickRate != nil && *o.TickRate > 0 {
		tun.TickRate = *o.TickRate
	}
	if o.SpeedMin != nil {
		tun.SpeedMin = *o.SpeedMin
	}
	if o.SpeedMax != nil {
		tun.SpeedMax = *o.SpeedMax
	}
	if o.AngVelMax != nil {
		tun.AngVelMax = *o.AngVelMax
	}
	if o.RestHeight != nil {
		tun.RestHeight = *o.RestHeight
	}
	if o.StillFrames != nil && *o.StillFrames > 0 {
		tun.StillFramesToSettle = *o.StillFrames
	}

	var seed int64
	if o.Seed != nil {
		seed = *o.Seed
	}
	return tun, seed, nil
}
