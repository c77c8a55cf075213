/*
Package observability turns engine lifecycle hooks into logs and metrics.

LoggingHooks writes one structured record per event, Metrics feeds
Prometheus collectors, and Chain fans a single event out to several hook
sets so both can be attached to the same engine.
*/
package observability
