// Package telemetry exports packetizer activity as Prometheus metrics.
//
// A Collector is attached to packetizers as their rtp.Observer:
//
//	collector, err := telemetry.NewCollector(prometheus.DefaultRegisterer)
//	if err != nil {
//	    return err
//	}
//	p, err := rtp.NewPacketizer(conn, cfg, rtp.WithObserver(collector))
//
// All counters carry a codec label.
package telemetry
