package models

import "time"

const (
	QualityPulsing   = "pulsing"
	QualityPressing  = "pressing"
	QualityStabbing  = "stabbing"
	QualityExplosive = "explosive"
	QualityDull      = "dull"
	QualityOther     = "other"
)

const (
	ZoneForehead    = "forehead"
	ZoneLeftTemple  = "left_temple"
	ZoneRightTemple = "right_temple"
	ZoneBehindEyes  = "behind_eyes"
	ZoneTopOfHead   = "top_of_head"
	ZoneBackOfHead  = "back_of_head"
	ZoneNeck        = "neck"
)

// ZoneUnrecognized collects zone values outside the fixed enumeration so they
// still show up in aggregates instead of being dropped.
const ZoneUnrecognized = "unrecognized"

const ZoneDefaultColor = "#94a3b8"

type Episode struct {
	ID                 string     `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;index" json:"-"`
	StartedAt          time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt            *time.Time `json:"ended_at"`
	Intensity          int        `gorm:"not null" json:"intensity"`
	Quality            string     `gorm:"not null;default:other" json:"quality"`
	Zones              []string   `gorm:"serializer:json" json:"zones"`
	HasAura            bool       `gorm:"not null;default:false" json:"has_aura"`
	LightSensitive     bool       `gorm:"not null;default:false" json:"light_sensitive"`
	SoundSensitive     bool       `gorm:"not null;default:false" json:"sound_sensitive"`
	SmellSensitive     bool       `gorm:"not null;default:false" json:"smell_sensitive"`
	HasNausea          bool       `gorm:"not null;default:false" json:"has_nausea"`
	WorsenedByMovement bool       `gorm:"not null;default:false" json:"worsened_by_movement"`
	Triggers           []string   `gorm:"serializer:json" json:"triggers"`
	Medication         string     `json:"medication"`
	Food               string     `json:"food"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"-"`
	UpdatedAt          time.Time  `json:"-"`
}

// IsOpen reports whether the episode is still ongoing.
func (episode Episode) IsOpen() bool {
	return episode.EndedAt == nil
}

func PainQualities() []string {
	return []string{
		QualityPulsing,
		QualityPressing,
		QualityStabbing,
		QualityExplosive,
		QualityDull,
		QualityOther,
	}
}

func IsValidQuality(quality string) bool {
	switch quality {
	case QualityPulsing, QualityPressing, QualityStabbing, QualityExplosive, QualityDull, QualityOther:
		return true
	default:
		return false
	}
}

// Zones returns the fixed head/neck regions in display order.
func Zones() []string {
	return []string{
		ZoneForehead,
		ZoneLeftTemple,
		ZoneRightTemple,
		ZoneBehindEyes,
		ZoneTopOfHead,
		ZoneBackOfHead,
		ZoneNeck,
	}
}

func IsValidZone(zone string) bool {
	switch zone {
	case ZoneForehead, ZoneLeftTemple, ZoneRightTemple, ZoneBehindEyes, ZoneTopOfHead, ZoneBackOfHead, ZoneNeck:
		return true
	default:
		return false
	}
}

func ZoneColors() map[string]string {
	return map[string]string{
		ZoneForehead:    "#6366f1",
		ZoneLeftTemple:  "#a855f7",
		ZoneRightTemple: "#d946ef",
		ZoneBehindEyes:  "#f59e0b",
		ZoneTopOfHead:   "#06b6d4",
		ZoneBackOfHead:  "#f43f5e",
		ZoneNeck:        "#10b981",
	}
}

func ZoneColor(zone string) string {
	if color, ok := ZoneColors()[zone]; ok {
		return color
	}
	return ZoneDefaultColor
}

// SuggestedTriggers lists the trigger labels offered in the episode form.
// Free-form labels are also accepted.
func SuggestedTriggers() []string {
	return []string{
		"stress",
		"sleep_deprivation",
		"dehydration",
		"screens",
		"weather",
		"alcohol",
		"fasting",
		"caffeine",
		"strong_smells",
		"neck_tension",
	}
}
