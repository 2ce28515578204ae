package protocol

import "glucoface/internal/models"

// ParseHistory decodes the chart-history wire string into chart points.
//
// Format: "value:minutesAgo,value:minutesAgo,..." most-recent-first. A
// missing ":minutesAgo" part means zero minutes. A value of exactly 0 marks
// an invalid sample and is skipped without aborting the scan. Any character
// other than ',' or end-of-input after a pair stops parsing early with the
// partial result; no error is ever reported. At most MaxChartPoints entries
// are taken, the rest of the string is ignored.
func ParseHistory(history string) []models.ChartPoint {
	if history == "" {
		return nil
	}

	points := make([]models.ChartPoint, 0, models.MaxChartPoints)
	i := 0

	for i < len(history) && len(points) < models.MaxChartPoints {
		value := 0
		for i < len(history) && history[i] >= '0' && history[i] <= '9' {
			value = value*10 + int(history[i]-'0')
			i++
		}

		minutesAgo := 0
		if i < len(history) && history[i] == ':' {
			i++
			for i < len(history) && history[i] >= '0' && history[i] <= '9' {
				minutesAgo = minutesAgo*10 + int(history[i]-'0')
				i++
			}
		}

		if value > 0 {
			points = append(points, models.ChartPoint{
				Value:      int16(value),
				MinutesAgo: int16(minutesAgo),
			})
		}

		if i < len(history) {
			if history[i] != ',' {
				break
			}
			i++
		}
	}

	return points
}
