package config

import "time"

// Environment keys read by the binaries.
const (
	EnvConfigPath     = "RINGDEFENSE_CONFIG"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFile        = "RINGDEFENSE_LOG_FILE"
	EnvSSHHost        = "SSH_HOST"
	EnvSSHPort        = "SSH_PORT"
	EnvSSHHostKey     = "SSH_HOST_KEY"
	EnvWebHost        = "WEB_HOST"
	EnvWebPort        = "WEB_PORT"
	EnvSSHDisplayHost = "SSH_DISPLAY_HOST"
)

// View resolution in logical units. Rendering scales to fit the terminal.
const (
	ViewWidth  = 120
	ViewHeight = 80 // Sub-pixels, so 40 terminal rows
)

// Max render resolution; larger terminals get a centered, bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxFrameDelta   = 0.1 // Seconds; longer frames are clamped so enemies do not jump
)

// Picking
const (
	PickRadius = 5.0 // Logical units around a click that count as touching an enemy
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Remote driver
const (
	RemoteReadTimeout  = 60 * time.Second
	RemotePingInterval = 30 * time.Second
	RemoteWriteTimeout = 10 * time.Second
	RemoteMaxMessage   = 64 * 1024
	RemoteMaxFrameDt   = 1.0 // Seconds; larger client deltas are clamped
)

// Player
const (
	MaxUsernameLength = 16
)
