/*
Package observability exposes playback metrics in Prometheus format.

Metrics are fed from the lifecycle events the engine drains each tick and
from the tick loop itself, so a host that never scrapes them pays only for
a few counter increments.
*/
package observability
