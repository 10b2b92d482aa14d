package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/terraincognita07/cefalog/internal/models"
)

// formatTemplateDate accepts both the value and pointer forms so templates
// can format the optional end timestamp directly.
func formatTemplateDate(value any, layout string) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(layout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(layout)
	}
	return ""
}

func formatTemplateFloat(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func templateQualityLabel(messages map[string]string, quality string) string {
	return translateMessage(messages, qualityTranslationKey(quality))
}

func templateZoneLabel(messages map[string]string, zone string) string {
	return translateMessage(messages, zoneTranslationKey(zone))
}

func templateTriggerLabel(messages map[string]string, trigger string) string {
	return localizedTriggerName(messages, trigger)
}

func templateBucketLabel(messages map[string]string, bucket string) string {
	return translateMessage(messages, bucketTranslationKey(bucket))
}

func templateUserIdentity(user *models.User) string {
	if user == nil {
		return ""
	}
	if displayName := strings.TrimSpace(user.DisplayName); displayName != "" {
		return displayName
	}
	return strings.TrimSpace(user.Email)
}

// intensityBadgeClass mirrors the coloring used across list and calendar
// views: 7+ is severe, 4+ is moderate, the rest mild.
func intensityBadgeClass(intensity int) string {
	switch {
	case intensity >= 7:
		return "intensity-severe"
	case intensity >= 4:
		return "intensity-moderate"
	default:
		return "intensity-mild"
	}
}

func templateDurationLabel(episode models.Episode, inProgressLabel string, hoursLabel string) string {
	if episode.IsOpen() {
		return inProgressLabel
	}
	hours := episode.EndedAt.Sub(episode.StartedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	return fmt.Sprintf("%.1f %s", hours, hoursLabel)
}

func hasTemplateValue(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}

func isActiveTemplateRoute(currentPath string, route string) bool {
	path := strings.TrimSpace(currentPath)
	if path == "" {
		return route == "/"
	}
	if route == "/" {
		return path == "/" || strings.HasPrefix(path, "/?")
	}
	return path == route || strings.HasPrefix(path, route+"?") || strings.HasPrefix(path, route+"/")
}

func templateToJSON(value any) template.JS {
	serialized, err := json.Marshal(value)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(serialized)
}

func templateDict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires key-value pairs")
	}
	result := make(map[string]any, len(values)/2)
	for index := 0; index < len(values); index += 2 {
		key, ok := values[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict key at index %d is not a string", index)
		}
		result[key] = values[index+1]
	}
	return result, nil
}
