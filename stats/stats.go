package stats

import (
	"log"
	"time"

	"github.com/Semantics3/go-amazon-media/types"
	"github.com/Semantics3/go-amazon-media/utils"
	influx "github.com/influxdata/influxdb/client/v2"
)

const lookupMeasurement = "amazon_lookup"

// Recorder sends lookup metrics to datadog and influxdb. Either sink may be
// missing, a nil Recorder records nothing.
type Recorder struct {
	statsd     Statter
	influxAddr string
}

func NewRecorder(statsdClient Statter, influxAddr string) *Recorder {
	return &Recorder{statsd: statsdClient, influxAddr: influxAddr}
}

// RecordChunk - datadog duration and request count for one vendor request
func (r *Recorder) RecordChunk(cm types.ChunkMetrics) {
	if r == nil || r.statsd == nil {
		return
	}
	sendChunkMetricsToDatadog(r.statsd, cm)
}

// RecordLookup - one influx point per lookup
func (r *Recorder) RecordLookup(lm types.LookupMetrics) {
	if r == nil || r.influxAddr == "" {
		return
	}
	tags := map[string]string{
		"locale": lm.Locale,
	}
	fields := map[string]interface{}{
		"ids":      lm.IDs,
		"chunks":   lm.Chunks,
		"items":    lm.Items,
		"failures": lm.Failures,
		"duration": utils.ComputeDuration(lm.Start),
		"value":    1,
	}
	writeDataToInfluxDB(r.influxAddr, lookupMeasurement, tags, fields, time.Now())
}

func writeDataToInfluxDB(addr string, measurement string, tags map[string]string, fields map[string]interface{}, tm time.Time) {
	// Make client
	config := influx.UDPConfig{Addr: addr}
	c, err := influx.NewUDPClient(config)
	if err != nil {
		log.Println("ERROR: Error creating UDP client for influxdb: ", err.Error())
		return
	}
	defer c.Close()

	log.Printf("INFLUX_1001: Measurement: %s, tags: %v, fields: %v, tm: %v, InfluxUrl: %s\n", measurement, tags, fields, tm, addr)

	// Create a new point batch
	bp, _ := influx.NewBatchPoints(influx.BatchPointsConfig{
		Precision: "ns",
	})

	// Create a point and add to batch
	pt, err := influx.NewPoint(measurement, tags, fields, tm)
	if err != nil {
		log.Printf("INFLUX_POINT_ERR: %v\n", err)
		return
	}
	bp.AddPoint(pt)

	// Write the batch
	if err := c.Write(bp); err != nil {
		log.Printf("INFLUX_WRITE_ERR: %v\n", err)
	}
}
