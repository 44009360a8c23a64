// Package mqtt provides MQTT client connectivity for the side-codec core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The side-codec core publishes every dispatched amplifier event to
// per-slot topics, so external tooling can watch stream activity and
// power transitions without touching the hardware. A small command
// topic allows bring-up rigs to inject PCM actions.
//
//	Side-codec core -> MQTT Broker -> Monitoring / rig tooling
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Publish an amplifier event
//	topic := mqtt.Topics{}.AmpEvent(2)
//	client.Publish(topic, []byte(`{"kind":"pcm_action","action":"open"}`), 1, false)
package mqtt
