// Package messaging publishes domain events. The AMQP publisher sends them to
// a topic exchange keyed by event type; the in-memory and no-op publishers
// serve tests and installations without a broker.
package messaging
