/*
Package observability provides tools for monitoring the espalier engine.

It translates lifecycle events into Prometheus collectors so node traffic,
transcript volume, achievements and quiz outcomes can be scraped from any
host embedding the engine.
*/
package observability
