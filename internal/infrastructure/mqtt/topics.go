package mqtt

import "fmt"

// Topic prefixes for the side-codec MQTT surface.
//
// Per-amp topics use the flat scheme: sidecodec/amp/{slot}/{category}
const (
	// TopicPrefix is the base for all side-codec topics.
	TopicPrefix = "sidecodec"

	// TopicPrefixAmp is the base for per-amplifier topics.
	TopicPrefixAmp = "sidecodec/amp"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "sidecodec/system"
)

// Topics provides builders for side-codec MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	eventTopic := topics.AmpEvent(2)
//	// Returns: "sidecodec/amp/2/event"
type Topics struct{}

// AmpEvent returns the topic for controller events concerning one slot.
//
// Example: sidecodec/amp/2/event
func (Topics) AmpEvent(slot int) string {
	return fmt.Sprintf("%s/%d/event", TopicPrefixAmp, slot)
}

// AmpState returns the retained per-slot state topic.
//
// Example: sidecodec/amp/2/state
func (Topics) AmpState(slot int) string {
	return fmt.Sprintf("%s/%d/state", TopicPrefixAmp, slot)
}

// ActionCommand returns the topic for externally requested PCM actions.
// A diagnostic surface for bring-up rigs; the HDA path does not use it.
//
// Example: sidecodec/command/action
func (Topics) ActionCommand() string {
	return fmt.Sprintf("%s/command/action", TopicPrefix)
}

// SystemStatus returns the system status topic carrying online/offline
// payloads and the LWT.
//
// Example: sidecodec/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllAmpEvents returns a pattern matching every slot's event topic.
//
// Pattern: sidecodec/amp/+/event
func (Topics) AllAmpEvents() string {
	return fmt.Sprintf("%s/+/event", TopicPrefixAmp)
}

// AllAmpStates returns a pattern matching every slot's state topic.
//
// Pattern: sidecodec/amp/+/state
func (Topics) AllAmpStates() string {
	return fmt.Sprintf("%s/+/state", TopicPrefixAmp)
}

// AllTopics returns a pattern matching all side-codec topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: sidecodec/#
func (Topics) AllTopics() string {
	return "sidecodec/#"
}
