// Package influxdb provides time-series metric recording for the
// side-codec core.
//
// This package manages:
//   - Connection to InfluxDB v2 with token authentication
//   - Non-blocking, batched metric writes
//   - Register I/O latency and failure measurements per amplifier
//   - Amplifier power/stream state snapshots
//
// # Architecture
//
// Every hardware register access flows through a regmap observer, which
// lands here as a register_io point. The write path is asynchronous: a
// slow or unavailable InfluxDB never blocks register traffic, and write
// errors surface via the SetOnError callback.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	observer := influxdb.NewRegisterIOObserver(client, "amp.2")
//	rm := regmap.New(bus, regmap.WithCache(), regmap.WithObserver(observer))
package influxdb
