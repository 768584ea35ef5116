package stats

import (
	"fmt"
	"log"
	"strings"

	"github.com/Semantics3/go-amazon-media/types"
	"github.com/Semantics3/go-amazon-media/utils"
)

// Statter is the part of the datadog statsd client used here
type Statter interface {
	Distribution(name string, value float64, tags []string, rate float64) error
	Incr(name string, tags []string, rate float64) error
}

const metricName = "amazon.lookup"

// Write chunk metrics to datadog
func sendChunkMetricsToDatadog(statsdClient Statter, cm types.ChunkMetrics) {
	tags := []string{
		fmt.Sprintf("locale:%s", cm.Locale),
	}

	// 1. Track duration
	duration := utils.ComputeDuration(cm.Start)
	fieldLevelMetricName := fmt.Sprintf("%s.%s", metricName, "duration")
	log.Printf("DATADOG metric: %s, tags: %v, duration: %f\n", fieldLevelMetricName, tags, duration)
	statsdClient.Distribution(fieldLevelMetricName, duration, tags, 1)

	// 2. Request count, tagged with the error code without its source prefix
	errorCode := strings.TrimPrefix(cm.ErrorCode, "AMAZON_")
	if errorCode == "" {
		errorCode = "NONE"
	}
	tags = append(tags, fmt.Sprintf("error:%s", errorCode))

	fieldLevelMetricName = fmt.Sprintf("%s.%s", metricName, "requests.count")
	log.Printf("DATADOG metric: %s, tags: %v\n", fieldLevelMetricName, tags)
	statsdClient.Incr(fieldLevelMetricName, tags, 1)
}
