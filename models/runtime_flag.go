package models

import "time"

// RuntimeFlag is an operator controlled kill switch stored in the database,
// layered on top of the env resolved feature flags. Reads go through a short
// lived cache, so a flip can take up to that staleness window to propagate.
type RuntimeFlag struct {
	Key       string
	Enabled   bool
	UpdatedAt time.Time
}

const (
	RuntimeFlagDrm       = "drm_enabled"
	RuntimeFlagAutopilot = "autopilot_enabled"
	RuntimeFlagOcr       = "ocr_enabled"
)
