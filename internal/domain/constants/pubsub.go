// Package constants holds identifiers shared across layers.
package constants

// Event publisher providers selectable with pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
	PubSubProviderAMQP   = "amqp"
)
