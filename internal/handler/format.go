package handler

import (
	"fmt"
	"strings"

	"nastaran/internal/domain"
)

const (
	hourlyLimit = 12
	dailyLimit  = 5
	weeklyLimit = 7
)

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// escapeMarkdown makes user or API supplied text safe inside a legacy Markdown message
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func formatFull(city string, w domain.CurrentWeather) string {
	return fmt.Sprintf("🌤 Weather in *%s*\n\n"+
		"🌡 Temp: %.1f°C\n"+
		"🥵 Feels like: %.1f°C\n"+
		"💧 Humidity: %d%%\n"+
		"🌬 Wind: %.1f km/h\n"+
		"☁️ Clouds: %d%%\n"+
		"🌧 Rain: %d%%\n"+
		"🔆 UV: %.1f\n\n"+
		"Condition: *%s* %s",
		escapeMarkdown(city),
		w.TemperatureC, w.FeelsLikeC, w.Humidity, w.WindSpeedKph,
		w.CloudCover, w.RainChance, w.UVIndex,
		w.Condition, w.Icon,
	)
}

func formatCurrent(w domain.CurrentWeather) string {
	return fmt.Sprintf("🌦 *Current weather*\n\n"+
		"🌡 Temp: %.1f°C\n"+
		"🥵 Feels like: %.1f°C\n"+
		"💧 Humidity: %d%%\n"+
		"🌬 Wind: %.1f km/h\n"+
		"🌧 Rain: %d%%\n"+
		"🔆 UV: %.1f\n\n"+
		"Condition: *%s* %s",
		w.TemperatureC, w.FeelsLikeC, w.Humidity, w.WindSpeedKph,
		w.RainChance, w.UVIndex,
		w.Condition, w.Icon,
	)
}

func formatCitySummary(city string, w domain.CurrentWeather) string {
	return fmt.Sprintf("🌤 Weather in *%s*\n\n"+
		"🌡 Temp: %.1f°C\n"+
		"💧 Humidity: %d%%\n"+
		"🌬 Wind: %.1f km/h\n\n"+
		"Condition: *%s* %s",
		escapeMarkdown(city),
		w.TemperatureC, w.Humidity, w.WindSpeedKph,
		w.Condition, w.Icon,
	)
}

func formatHourly(hours []domain.HourlyForecast) string {
	if len(hours) == 0 {
		return "⚠️ No hourly forecast available."
	}
	if len(hours) > hourlyLimit {
		hours = hours[:hourlyLimit]
	}

	entries := make([]string, 0, len(hours))
	for _, h := range hours {
		entries = append(entries, fmt.Sprintf("🕒 *%s*\n🌡 %.1f°C (Feels %.1f°C)\n💧 %d%%\n🌬 %.1f km/h\n🌧 %d%%\n%s %s",
			h.Time.Format("15:04"),
			h.TemperatureC, h.FeelsLikeC, h.Humidity, h.WindSpeedKph, h.RainChance,
			h.Condition, h.Icon,
		))
	}
	return "⏱ *Hourly forecast (next 12 hours)*\n\n" + strings.Join(entries, "\n\n")
}

func formatDaily(days []domain.DailyForecast) string {
	if len(days) == 0 {
		return "⚠️ No daily forecast available."
	}
	return "📆 *Daily forecast (next 5 days)*\n\n" + formatDays(days, dailyLimit, "📆", "Monday")
}

func formatWeekly(days []domain.DailyForecast) string {
	if len(days) == 0 {
		return "⚠️ No weekly forecast available."
	}
	return "📅 *Weekly forecast*\n\n" + formatDays(days, weeklyLimit, "📅", "Mon")
}

func formatDays(days []domain.DailyForecast, limit int, icon, layout string) string {
	if len(days) > limit {
		days = days[:limit]
	}
	entries := make([]string, 0, len(days))
	for _, d := range days {
		entries = append(entries, fmt.Sprintf("%s *%s*\n🌡 %.1f°C / %.1f°C\n🌧 %d%%\n%s %s",
			icon, d.Date.Format(layout),
			d.TemperatureMaxC, d.TemperatureMinC, d.RainChance,
			d.Condition, d.Icon,
		))
	}
	return strings.Join(entries, "\n\n")
}

func formatIdeas(ideas []domain.Idea) string {
	lines := make([]string, 0, len(ideas))
	for _, i := range ideas {
		label := i.Label
		if label == "" {
			label = "Idea"
		}
		lines = append(lines, fmt.Sprintf("💭 %s: %s", label, i.Content))
	}
	return strings.Join(lines, "\n\n")
}

func formatNotes(notes []domain.Note) string {
	var b strings.Builder
	b.WriteString("📔 Your recent notes:\n")
	for _, n := range notes {
		fmt.Fprintf(&b, "\n• %s (%s)", n.Content, n.CreatedAt.Format("Jan 2"))
	}
	return b.String()
}

func formatInspirationCaption(insp domain.Inspiration) string {
	var b strings.Builder
	if insp.Label != "" {
		fmt.Fprintf(&b, "📂 %s\n", insp.Label)
	}
	b.WriteString(insp.Content)
	if len(insp.Tags) > 0 {
		b.WriteString("\n\n#")
		b.WriteString(strings.Join(insp.Tags, " #"))
	}
	return b.String()
}
