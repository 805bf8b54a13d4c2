// Package domain holds DTOs for reference star selection http and service contracts
package domain

// Times are RFC 3339, a value without zone is read as UTC
// Durations are Go durations with an optional leading day count like 30d or 1d12h

// WindowInput is the observation window shared by every request
type WindowInput struct {
	Start    string `json:"start" validate:"required" example:"2027-01-01T00:00:00Z"`
	Duration string `json:"duration" validate:"required" example:"30d"`
	Samples  int    `json:"samples,omitempty" validate:"omitempty,min=2,max=100000" example:"100"`
}

// SelectInput asks for a reference star for Target
type SelectInput struct {
	Target string `json:"target" validate:"required,max=200" example:"HD 189733"`
	WindowInput
}

// SkipRow names a candidate passed over because of unusable catalog data
type SkipRow struct {
	Name   string `json:"name" example:"HD 12"`
	Class  string `json:"class" example:"B"`
	Reason string `json:"reason" example:"star \"HD 12\" has no sy_dist"`
}

// SelectOutput is the result of one selection
type SelectOutput struct {
	Status            string    `json:"status" enums:"found,target_invalid,exhausted" example:"found"`
	Message           string    `json:"message" example:"HD 189749"`
	Target            string    `json:"target" example:"HD 189733"`
	Reference         string    `json:"reference,omitempty" example:"HD 189749"`
	Class             string    `json:"class,omitempty" example:"A"`
	MaxPitchOffsetDeg *float64  `json:"max_pitch_offset_deg,omitempty" example:"1.25"`
	Start             string    `json:"start" example:"2027-01-01T00:00:00.000"`
	End               string    `json:"end" example:"2027-01-31T00:00:00.000"`
	Classes           []string  `json:"classes" example:"A,B,C"`
	Evaluated         int       `json:"evaluated" example:"7"`
	Skipped           []SkipRow `json:"skipped,omitempty"`
}

// PointingInput asks for the solar constraint of one star
type PointingInput struct {
	Star string `json:"star" validate:"required,max=200" example:"HD 189733"`
	WindowInput
}

// SampleRow is the attitude at one sampled instant
type SampleRow struct {
	Time     string  `json:"time" example:"2027-01-01T00:00:00.000"`
	SunDeg   float64 `json:"sun_deg" example:"131.2"`
	PitchDeg float64 `json:"pitch_deg" example:"41.2"`
	YawDeg   float64 `json:"yaw_deg" example:"-12.5"`
}

// PointingOutput is the solar constraint report for one star
type PointingOutput struct {
	Star       string      `json:"star" example:"HD 189733"`
	Valid      bool        `json:"valid" example:"true"`
	Violations int         `json:"violations" example:"0"`
	SunMinDeg  float64     `json:"sun_min_deg" example:"54"`
	SunMaxDeg  float64     `json:"sun_max_deg" example:"126"`
	Start      string      `json:"start" example:"2027-01-01T00:00:00.000"`
	End        string      `json:"end" example:"2027-01-31T00:00:00.000"`
	Samples    []SampleRow `json:"samples"`
}

// CatalogOutput summarizes the catalog by grade
type CatalogOutput struct {
	Total   int64            `json:"total" example:"5120"`
	ByClass map[string]int64 `json:"by_class"`
}
